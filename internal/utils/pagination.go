package utils

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const maxPageSize = 200

// Page is an optional window over a listing. A zero Limit means everything.
type Page struct {
	Number int
	Limit  int
}

// ParsePage reads the page and limit query params. Listings stay unpaged
// unless the caller asks for a limit.
func ParsePage(c *fiber.Ctx) Page {
	p := Page{Number: atoiOr(c.Query("page"), 1), Limit: atoiOr(c.Query("limit"), 0)}
	if p.Number <= 0 {
		p.Number = 1
	}
	if p.Limit < 0 {
		p.Limit = 0
	}
	if p.Limit > maxPageSize {
		p.Limit = maxPageSize
	}
	return p
}

// Scope applies the window to a gorm query.
func (p Page) Scope(db *gorm.DB) *gorm.DB {
	if p.Limit == 0 {
		return db
	}
	return db.Offset((p.Number - 1) * p.Limit).Limit(p.Limit)
}

func atoiOr(value string, fallback int) int {
	if parsed, err := strconv.Atoi(value); err == nil {
		return parsed
	}
	return fallback
}
