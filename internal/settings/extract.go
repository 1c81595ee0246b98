// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package settings

import (
	"errors"
	"regexp"
	"strings"
)

// ErrInvalidDatabaseURL is returned when a Notion URL does not carry a
// database id in the expected shape.
var ErrInvalidDatabaseURL = errors.New("invalid Notion database URL")

// databaseURLPattern matches https://www.notion.so/<workspace>/<id>[?v=<view>].
var databaseURLPattern = regexp.MustCompile(`^https://www\.notion\.so/[^/]+/([a-zA-Z0-9]+)(\?v=[a-zA-Z0-9]+)?`)

// ExtractDatabaseID returns the database id segment of a Notion database URL.
func ExtractDatabaseID(rawURL string) (string, bool) {
	m := databaseURLPattern.FindStringSubmatch(strings.TrimSpace(rawURL))
	if m == nil {
		return "", false
	}
	return m[1], true
}
