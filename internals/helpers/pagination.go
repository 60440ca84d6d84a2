package helper

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/gofiber/fiber/v2"
)

const DefaultPage = 1

type PaginationOptions struct {
	DefaultPerPage int
	MaxPerPage     int
}

// ===== Preset =====
var (
	DefaultOpts = PaginationOptions{DefaultPerPage: 25, MaxPerPage: 200}
	AdminOpts   = PaginationOptions{DefaultPerPage: 50, MaxPerPage: 500}
)

type PaginationParams struct {
	Page      int
	PerPage   int
	SortBy    string
	SortOrder string // asc|desc
}

func (p PaginationParams) Offset() int { return (p.Page - 1) * p.PerPage }

// SafeOrderClause memetakan sort_by dari query string ke kolom lewat whitelist.
// sort_by di luar whitelist jatuh ke defaultKey; tidak ada string caller yang
// masuk langsung ke SQL.
func (p PaginationParams) SafeOrderClause(allowed map[string]string, defaultKey string) (string, error) {
	key := p.SortBy
	if key == "" {
		key = defaultKey
	}
	col, ok := allowed[key]
	if !ok {
		col, ok = allowed[defaultKey]
		if !ok {
			return "", fmt.Errorf("no valid default sort key")
		}
	}
	dir := "DESC"
	if strings.ToLower(p.SortOrder) == "asc" {
		dir = "ASC"
	}
	return col + " " + dir, nil
}

// ParsePagination membaca page/per_page/sort_by/sort_order dari query string.
func ParsePagination(c *fiber.Ctx, defaultSortBy, defaultSortOrder string) PaginationParams {
	return ParsePaginationWith(c, defaultSortBy, defaultSortOrder, DefaultOpts)
}

func ParsePaginationWith(c *fiber.Ctx, defaultSortBy, defaultSortOrder string, opt PaginationOptions) PaginationParams {
	page := atoiDefault(c.Query("page"), DefaultPage)
	if page < 1 {
		page = DefaultPage
	}

	per := atoiDefault(firstNonEmpty(c.Query("per_page"), c.Query("limit")), opt.DefaultPerPage)
	if per > opt.MaxPerPage {
		per = opt.MaxPerPage
	}
	if per < 1 {
		per = opt.DefaultPerPage
	}

	sortBy := strings.TrimSpace(c.Query("sort_by"))
	if sortBy == "" {
		sortBy = defaultSortBy
	}
	sortOrder := strings.ToLower(strings.TrimSpace(c.Query("sort_order")))
	if sortOrder != "asc" && sortOrder != "desc" {
		sortOrder = defaultSortOrder
	}

	return PaginationParams{Page: page, PerPage: per, SortBy: sortBy, SortOrder: sortOrder}
}

// BuildMeta menghasilkan blok meta standar untuk list response.
func BuildMeta(total int64, p PaginationParams) fiber.Map {
	totalPages := int(math.Ceil(float64(total) / float64(p.PerPage)))
	if totalPages < 1 {
		totalPages = 1
	}
	return fiber.Map{
		"page":        p.Page,
		"per_page":    p.PerPage,
		"total":       total,
		"total_pages": totalPages,
	}
}

func atoiDefault(s string, def int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
		return n
	}
	return def
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
