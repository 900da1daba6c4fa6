package seed

import (
	_ "embed"
	"fmt"

	"postboard/internal/models"
	"postboard/internal/validation"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

//go:embed groups.yml
var builtInGroupsYAML []byte

// GroupFixture is one entry of a groups YAML file.
type GroupFixture struct {
	Title       string `yaml:"title"`
	Slug        string `yaml:"slug"`
	Description string `yaml:"description"`
}

// ParseGroups decodes and validates a groups YAML document.
func ParseGroups(data []byte) ([]GroupFixture, error) {
	var fixtures []GroupFixture
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("parse groups fixture: %w", err)
	}

	seen := make(map[string]struct{}, len(fixtures))
	for i, f := range fixtures {
		if err := validation.ValidateGroupTitle(f.Title); err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
		if err := validation.ValidateGroupSlug(f.Slug); err != nil {
			return nil, fmt.Errorf("group %q: %w", f.Slug, err)
		}
		if _, dup := seen[f.Slug]; dup {
			return nil, fmt.Errorf("group %q listed twice", f.Slug)
		}
		seen[f.Slug] = struct{}{}
	}
	return fixtures, nil
}

// BuiltInGroups returns the embedded group fixtures.
func BuiltInGroups() ([]GroupFixture, error) {
	return ParseGroups(builtInGroupsYAML)
}

// Groups upserts fixtures by slug and returns the stored rows.
func Groups(db *gorm.DB, fixtures []GroupFixture) ([]*models.Group, error) {
	groups := make([]*models.Group, 0, len(fixtures))
	for _, f := range fixtures {
		group := &models.Group{Title: f.Title, Slug: f.Slug, Description: f.Description}
		if err := db.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "slug"}},
			DoUpdates: clause.AssignmentColumns([]string{"title", "description"}),
		}).Create(group).Error; err != nil {
			return nil, fmt.Errorf("upsert group %q: %w", f.Slug, err)
		}
		if group.ID == 0 {
			if err := db.Where("slug = ?", f.Slug).First(group).Error; err != nil {
				return nil, err
			}
		}
		groups = append(groups, group)
	}
	return groups, nil
}
