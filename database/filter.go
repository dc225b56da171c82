package database

import (
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// likeEscaper escapes LIKE wildcards so user input only ever matches literally.
var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

// containsPattern builds a case-insensitive substring pattern to compare
// against LOWER(column) with ESCAPE '\'.
func containsPattern(s string) string {
	return "%" + likeEscaper.Replace(strings.ToLower(s)) + "%"
}

const likeEscape = ` ESCAPE '\'`

// idsOf collects the primary keys of already loaded rows.
func idsOf[T interface{ GetID() uuid.UUID }](items []T) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(items))
	for _, item := range items {
		ids = append(ids, item.GetID())
	}
	return ids
}

// replaceAssociation swaps a many-to-many association for the rows whose ids
// are listed. Clients may therefore send references that carry nothing but
// an id.
func replaceAssociation[T any](tx *gorm.DB, owner any, name string, ids []uuid.UUID) error {
	var rows []T
	if len(ids) > 0 {
		if err := tx.Where("id IN ?", ids).Find(&rows).Error; err != nil {
			return err
		}
	}
	if len(rows) == 0 {
		return tx.Model(owner).Association(name).Clear()
	}
	return tx.Model(owner).Association(name).Replace(rows)
}
