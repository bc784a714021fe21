package items

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/agentstation/retroshelf/internal/form"
	"github.com/agentstation/retroshelf/pkg/items"
)

// fieldFlags binds one string flag per record field, named like the form
// fields.
type fieldFlags struct {
	values form.Values
}

func addFieldFlags(cmd *cobra.Command) *fieldFlags {
	f := &fieldFlags{}
	flags := cmd.Flags()
	flags.StringVar(&f.values.Title, items.FieldTitle, "", "Title (required)")
	flags.StringVar(&f.values.Description, items.FieldDescription, "", "Description (required)")
	flags.StringVar(&f.values.Category, items.FieldCategory, "", "Category (required)")
	flags.StringVar(&f.values.Image, items.FieldImage, "", "Cover image URL (required)")
	flags.StringVar(&f.values.Platform, items.FieldPlatform, "", "Platform (required)")
	flags.StringVar(&f.values.Year, items.FieldYear, "", "Release year (required, numeric)")
	flags.StringVar(&f.values.Genre, items.FieldGenre, "", "Genre")
	return f
}

// overlay copies the flags the user set onto base. Values are trimmed the
// way the form reader trims them.
func (f *fieldFlags) overlay(cmd *cobra.Command, base form.Values) form.Values {
	set := func(name, value string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst = strings.TrimSpace(value)
		}
	}
	set(items.FieldTitle, f.values.Title, &base.Title)
	set(items.FieldDescription, f.values.Description, &base.Description)
	set(items.FieldCategory, f.values.Category, &base.Category)
	set(items.FieldImage, f.values.Image, &base.Image)
	set(items.FieldPlatform, f.values.Platform, &base.Platform)
	set(items.FieldYear, f.values.Year, &base.Year)
	set(items.FieldGenre, f.values.Genre, &base.Genre)
	return base
}

// changed reports whether any field flag was set.
func (f *fieldFlags) changed(cmd *cobra.Command) bool {
	for _, name := range append([]string{items.FieldGenre}, items.RequiredFields...) {
		if cmd.Flags().Changed(name) {
			return true
		}
	}
	return false
}
