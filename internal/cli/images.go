package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/dmitrijs2005/gmfgallery/internal/common"
	"github.com/dmitrijs2005/gmfgallery/internal/ingest"
	"github.com/dmitrijs2005/gmfgallery/internal/models"
	"github.com/dmitrijs2005/gmfgallery/internal/services"
)

// List prints the gallery, newest first. Unless strict listing is
// configured, a failing metadata store shows as an empty gallery.
func (a *App) List(ctx context.Context) error {
	var list []models.GalleryImage
	if a.config.StrictListing {
		l, err := a.gallery.ListImages(ctx)
		if err != nil {
			return err
		}
		list = l
	} else {
		list = a.gallery.ListImagesOrEmpty(ctx)
	}

	if len(list) == 0 {
		fmt.Fprintln(a.out, "No images yet")
		return nil
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tDESCRIPTION\tURL")
	for _, img := range list {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", img.ID, img.FormattedDate(), img.Description, shorten(img.URL, 60))
	}
	return tw.Flush()
}

// Add asks for an image source and a description. A source naming an
// existing file is uploaded; anything else is stored as an external URL.
func (a *App) Add(ctx context.Context) error {
	source, err := getSimpleText(a.reader, "Image file path or URL", a.out)
	if err != nil {
		return err
	}

	var file *models.ImagePayload
	rawURL := source
	if fi, statErr := os.Stat(source); statErr == nil && !fi.IsDir() {
		p, err := a.normalizer.FromPath(source)
		if err != nil {
			if errors.Is(err, ingest.ErrNotAnImage) {
				fmt.Fprintln(a.out, "Please upload an image file")
				return nil
			}
			return err
		}
		file, rawURL = &p, ""
	}

	description, err := getSimpleText(a.reader, "Description", a.out)
	if err != nil {
		return err
	}

	payload, description, err := a.normalizer.Prepare(file, rawURL, description)
	if err != nil {
		fmt.Fprintln(a.out, err.Error())
		return nil
	}

	image, err := a.gallery.AddImage(ctx, payload, description)
	if err != nil {
		var addErr *services.AddImageError
		if errors.As(err, &addErr) && addErr.OrphanedBlob {
			fmt.Fprintf(a.out, "Warning: uploaded file %s is not referenced by any image\n", addErr.StoragePath)
		}
		return err
	}

	fmt.Fprintf(a.out, "Image added to gallery (id %s)\n", image.ID)
	return a.List(ctx)
}

// Delete removes the image with the given id after confirmation.
func (a *App) Delete(ctx context.Context, id string) error {
	image, err := a.gallery.FindImage(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintf(a.out, "Image %s not found\n", id)
			return nil
		}
		return err
	}

	ok, err := getConfirmation(a.reader, "Delete this image permanently?", a.out)
	if err != nil {
		return err
	}
	if !ok {
		fmt.Fprintln(a.out, "Cancelled")
		return nil
	}

	res, err := a.gallery.DeleteImageDetailed(ctx, *image)
	if err != nil {
		if res.OrphanedBlobPath != "" {
			fmt.Fprintf(a.out, "Image removed, but its file %s could not be deleted\n", res.OrphanedBlobPath)
			return a.List(ctx)
		}
		return err
	}

	fmt.Fprintln(a.out, "Image deleted")
	return a.List(ctx)
}

func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
