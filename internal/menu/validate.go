package menu

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"
)

var (
	ErrInvalidDish     = errors.New("invalid dish")
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidImage    = errors.New("invalid image")
)

var validate = validator.New()

var allowedImageExt = map[string]string{
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
	".png":  "image/png",
	".webp": "image/webp",
}

// ValidateImageExtension returns the content type for an allowed dish
// image file name.
func ValidateImageExtension(filename string) (string, error) {
	ext := strings.ToLower(filepath.Ext(filename))

	if ext == "" {
		return "", fmt.Errorf("%w: file extension missing", ErrInvalidImage)
	}

	contentType, ok := allowedImageExt[ext]
	if !ok {
		return "", fmt.Errorf("%w: file type %s not allowed", ErrInvalidImage, ext)
	}
	return contentType, nil
}

func validateDish(d *Dish) error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidDish, err)
	}

	seen := make(map[string]bool, len(d.Variants))
	for _, v := range d.Variants {
		if seen[v.Label] {
			return fmt.Errorf("%w: duplicate variant %q", ErrInvalidDish, v.Label)
		}
		seen[v.Label] = true
	}
	return nil
}

func validateCategory(c *Category) error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidCategory, err)
	}
	return nil
}

// Slugify turns a dish name into an id: "Chicken Strips (4pcs)" becomes
// "chicken-strips-4pcs".
func Slugify(name string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(name) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			b.WriteRune(r)
			dash = false
			continue
		}
		if !dash && b.Len() > 0 {
			b.WriteByte('-')
			dash = true
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
