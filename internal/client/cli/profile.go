package cli

import (
	"context"
	"strings"
	"time"

	"github.com/dmitrijs2005/world/internal/client/models"
)

const (
	ProfileTitle    = "Profile"
	ProfileSubtitle = "This is your profile"
)

// Profile prints the profile header and the saved posts, most recent first.
func (a *App) Profile(ctx context.Context) error {
	a.println(ProfileTitle)
	a.println(ProfileSubtitle)

	posts := a.storage.LoadAll(ctx)
	if len(posts) == 0 {
		a.println("No saved posts yet")
		return nil
	}

	a.printf("Saved posts: %d\n", len(posts))
	for i, p := range posts {
		a.printPost(ctx, i+1, p)
	}
	return nil
}

func (a *App) printPost(ctx context.Context, n int, p models.PostRecord) {
	a.printf("%d. %s  %s\n", n, p.CreatedAt.Local().Format(time.DateTime), p.Coordinate())
	if p.Content != "" {
		a.printf("   %s\n", strings.ReplaceAll(p.Content, "\n", "\n   "))
	}
	for _, ref := range p.ImageLocalIdentifiers {
		photo, err := a.library.Open(ctx, ref)
		if err != nil {
			a.printf("   [photo %s unavailable]\n", ref)
			continue
		}
		a.printf("   [photo %dx%d] %s\n", photo.Width, photo.Height, photo.Path)
	}
}
