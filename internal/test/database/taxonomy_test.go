package database_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"portfolio-backend/internal/database"
)

func TestSlugify(t *testing.T) {
	cases := map[string]string{
		"Next.js":            "next-js",
		"C++":                "c",
		"TypeScript":         "typescript",
		"Machine Learning":   "machine-learning",
		"  padded  name  ":   "padded-name",
		"UPPER CASE":         "upper-case",
		"already-slugified":  "already-slugified",
		"multiple---dashes":  "multiple-dashes",
		"ends with symbol!":  "ends-with-symbol",
		"123 numbers first":  "123-numbers-first",
	}

	for input, want := range cases {
		assert.Equal(t, want, database.Slugify(input), "Slugify(%q)", input)
	}
}

func TestSlugify_OnlySymbols(t *testing.T) {
	assert.Equal(t, "", database.Slugify("!!!"))
	assert.Equal(t, "", database.Slugify(""))
}
