// Package catalog provides read-only access to the third-party tool catalog
// database. The catalog is a plain sqlite file; this package only runs
// queries and surfaces BLOB columns as raw bytes for the wire decoder, it
// never interprets them itself.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "modernc.org/sqlite"
)

// DB wraps an open catalog database.
type DB struct {
	db   *sql.DB
	path string
}

// Open opens the catalog at path. The file must already exist; this package
// never creates or migrates a catalog.
func Open(path string) (*DB, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("catalog %q: %w", path, err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open catalog %q: %w", path, err)
	}

	return &DB{db: db, path: path}, nil
}

// Close releases the underlying connection.
func (c *DB) Close() error {
	return c.db.Close()
}

// Path returns the catalog file path.
func (c *DB) Path() string {
	return c.path
}

// Action is one row of the Tools table joined with its display localization
// and owning container. Missing localizations leave the text fields empty.
type Action struct {
	RowID                    int64
	ID                       string
	ToolType                 string
	Flags                    int64
	VisibilityFlags          int64
	DeprecationReplacementID string
	SourceProvider           string
	Name                     string
	DescriptionSummary       string
	DescriptionNote          string
	DeprecationMessage       string
	ContainerID              string
	AppName                  string
}

// Parameter is one row of the Parameters table for a given action. The
// TypeInstance and Relationships columns are opaque wire-format blobs.
type Parameter struct {
	Key           string
	SortOrder     int64
	Flags         int64
	TypeInstance  []byte
	Relationships []byte
	Name          string
	Description   string
}

// TypeInfo is one row of the Types table. ID and RuntimeRequirements are
// opaque blobs.
type TypeInfo struct {
	RowID               int64
	ID                  []byte
	Kind                int64
	RuntimeFlags        int64
	RuntimeRequirements []byte
	Name                string
	ContainerID         string
}

// EntityProperty is a named property of an entity type.
type EntityProperty struct {
	ID          string `json:"id"`
	DisplayName string `json:"display_name"`
}

// EnumCase is one case of an enumeration type.
type EnumCase struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Subtitle string `json:"subtitle,omitempty"`
}

// ActionCount returns the number of rows in the Tools table.
func (c *DB) ActionCount(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Tools`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count actions: %w", err)
	}
	return n, nil
}

// TypeCount returns the number of rows in the Types table.
func (c *DB) TypeCount(ctx context.Context) (int, error) {
	var n int
	if err := c.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM Types`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count types: %w", err)
	}
	return n, nil
}

const actionColumns = `
	t.rowId,
	t.id,
	t.toolType,
	t.flags,
	t.visibilityFlags,
	t.deprecationReplacementId,
	t.sourceActionProvider,
	tl.name,
	tl.descriptionSummary,
	tl.descriptionNote,
	tl.deprecationMessage,
	cm.id,
	cml.name
FROM Tools t
LEFT JOIN ToolLocalizations tl
	ON t.rowId = tl.toolId
	AND tl.locale = ?
	AND tl.localizationUsage = 'display'
LEFT JOIN ContainerMetadata cm
	ON t.sourceContainerId = cm.rowId
LEFT JOIN ContainerMetadataLocalizations cml
	ON cm.rowId = cml.containerId
	AND cml.locale = ?`

// Actions returns every action with its basic display information for the
// given locale, ordered by id.
func (c *DB) Actions(ctx context.Context, locale string) ([]Action, error) {
	query := `SELECT ` + actionColumns + ` ORDER BY t.id`

	rows, err := c.db.QueryContext(ctx, query, locale, locale)
	if err != nil {
		return nil, fmt.Errorf("query actions: %w", err)
	}
	defer rows.Close()

	return scanActions(rows)
}

// HiddenActions returns the actions with non-zero visibility flags, most
// hidden first.
func (c *DB) HiddenActions(ctx context.Context, locale string) ([]Action, error) {
	query := `SELECT ` + actionColumns + `
WHERE t.visibilityFlags > 0
ORDER BY t.visibilityFlags DESC, t.id`

	rows, err := c.db.QueryContext(ctx, query, locale, locale)
	if err != nil {
		return nil, fmt.Errorf("query hidden actions: %w", err)
	}
	defer rows.Close()

	return scanActions(rows)
}

func scanActions(rows *sql.Rows) ([]Action, error) {
	var actions []Action

	for rows.Next() {
		var a Action
		var toolType, deprecationID, provider sql.NullString
		var name, summary, note, deprecationMsg, containerID, appName sql.NullString

		err := rows.Scan(
			&a.RowID, &a.ID, &toolType, &a.Flags, &a.VisibilityFlags,
			&deprecationID, &provider,
			&name, &summary, &note, &deprecationMsg,
			&containerID, &appName,
		)
		if err != nil {
			return nil, fmt.Errorf("scan action: %w", err)
		}

		a.ToolType = toolType.String
		a.DeprecationReplacementID = deprecationID.String
		a.SourceProvider = provider.String
		a.Name = name.String
		a.DescriptionSummary = summary.String
		a.DescriptionNote = note.String
		a.DeprecationMessage = deprecationMsg.String
		a.ContainerID = containerID.String
		a.AppName = appName.String

		actions = append(actions, a)
	}

	return actions, rows.Err()
}

// Parameters returns the parameters of one action in sort order.
func (c *DB) Parameters(ctx context.Context, toolID int64, locale string) ([]Parameter, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT
	p.key,
	p.sortOrder,
	p.flags,
	p.typeInstance,
	p.relationships,
	pl.name,
	pl.description
FROM Parameters p
LEFT JOIN ParameterLocalizations pl
	ON p.toolId = pl.toolId
	AND p.key = pl.key
	AND pl.locale = ?
WHERE p.toolId = ?
ORDER BY p.sortOrder`, locale, toolID)
	if err != nil {
		return nil, fmt.Errorf("query parameters: %w", err)
	}
	defer rows.Close()

	var params []Parameter
	for rows.Next() {
		var p Parameter
		var name, description sql.NullString

		if err := rows.Scan(&p.Key, &p.SortOrder, &p.Flags, &p.TypeInstance, &p.Relationships, &name, &description); err != nil {
			return nil, fmt.Errorf("scan parameter: %w", err)
		}

		p.Name = name.String
		p.Description = description.String
		params = append(params, p)
	}

	return params, rows.Err()
}

// ParameterTypes returns the accepted type identifiers of one parameter.
func (c *DB) ParameterTypes(ctx context.Context, toolID int64, key string) ([]string, error) {
	return c.stringColumn(ctx, `
SELECT typeId FROM ToolParameterTypes
WHERE toolId = ? AND key = ?`, toolID, key)
}

// OutputTypes returns the output type identifiers of one action.
func (c *DB) OutputTypes(ctx context.Context, toolID int64) ([]string, error) {
	return c.stringColumn(ctx, `
SELECT typeIdentifier FROM ToolOutputTypes
WHERE toolId = ?`, toolID)
}

// Categories returns the categories of one action for a locale.
func (c *DB) Categories(ctx context.Context, toolID int64, locale string) ([]string, error) {
	return c.stringColumn(ctx, `
SELECT category FROM Categories
WHERE toolId = ? AND locale = ?`, toolID, locale)
}

// Keywords returns the search keywords of one action for a locale.
func (c *DB) Keywords(ctx context.Context, toolID int64, locale string) ([]string, error) {
	return c.stringColumn(ctx, "SELECT keyword FROM SearchKeywords\nWHERE toolId = ? AND locale = ?\nORDER BY `order`", toolID, locale)
}

func (c *DB) stringColumn(ctx context.Context, query string, args ...any) ([]string, error) {
	rows, err := c.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	var values []string
	for rows.Next() {
		var v sql.NullString
		if err := rows.Scan(&v); err != nil {
			return nil, fmt.Errorf("scan: %w", err)
		}
		if v.Valid {
			values = append(values, v.String)
		}
	}

	return values, rows.Err()
}

// Types returns every row of the Types table in rowId order.
func (c *DB) Types(ctx context.Context, locale string) ([]TypeInfo, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT
	t.rowId,
	t.id,
	t.kind,
	t.runtimeFlags,
	t.runtimeRequirements,
	tdr.name,
	cm.id
FROM Types t
LEFT JOIN TypeDisplayRepresentations tdr
	ON t.rowId = tdr.typeId
	AND tdr.locale = ?
LEFT JOIN ContainerMetadata cm
	ON t.sourceContainerId = cm.rowId
ORDER BY t.rowId`, locale)
	if err != nil {
		return nil, fmt.Errorf("query types: %w", err)
	}
	defer rows.Close()

	var types []TypeInfo
	for rows.Next() {
		var ti TypeInfo
		var name, containerID sql.NullString
		if err := rows.Scan(&ti.RowID, &ti.ID, &ti.Kind, &ti.RuntimeFlags, &ti.RuntimeRequirements, &name, &containerID); err != nil {
			return nil, fmt.Errorf("scan type: %w", err)
		}
		ti.Name = name.String
		ti.ContainerID = containerID.String
		types = append(types, ti)
	}

	return types, rows.Err()
}

// Type returns one row of the Types table by rowId, or nil when absent.
func (c *DB) Type(ctx context.Context, typeRowID int64, locale string) (*TypeInfo, error) {
	row := c.db.QueryRowContext(ctx, `
SELECT
	t.rowId,
	t.id,
	t.kind,
	t.runtimeFlags,
	t.runtimeRequirements,
	tdr.name,
	cm.id
FROM Types t
LEFT JOIN TypeDisplayRepresentations tdr
	ON t.rowId = tdr.typeId
	AND tdr.locale = ?
LEFT JOIN ContainerMetadata cm
	ON t.sourceContainerId = cm.rowId
WHERE t.rowId = ?`, locale, typeRowID)

	var ti TypeInfo
	var name, containerID sql.NullString

	err := row.Scan(&ti.RowID, &ti.ID, &ti.Kind, &ti.RuntimeFlags, &ti.RuntimeRequirements, &name, &containerID)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query type %d: %w", typeRowID, err)
	}

	ti.Name = name.String
	ti.ContainerID = containerID.String
	return &ti, nil
}

// EntityProperties returns the properties of an entity type.
func (c *DB) EntityProperties(ctx context.Context, typeRowID int64, locale string) ([]EntityProperty, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT
	ep.id,
	epl.displayName
FROM EntityProperties ep
LEFT JOIN EntityPropertyLocalizations epl
	ON ep.id = epl.propertyId
	AND ep.typeId = epl.typeId
	AND epl.locale = ?
WHERE ep.typeId = ?
ORDER BY ep.id`, locale, typeRowID)
	if err != nil {
		return nil, fmt.Errorf("query entity properties: %w", err)
	}
	defer rows.Close()

	var props []EntityProperty
	for rows.Next() {
		var p EntityProperty
		var displayName sql.NullString
		if err := rows.Scan(&p.ID, &displayName); err != nil {
			return nil, fmt.Errorf("scan entity property: %w", err)
		}
		p.DisplayName = displayName.String
		props = append(props, p)
	}

	return props, rows.Err()
}

// EnumCases returns the cases of an enumeration type for a locale.
func (c *DB) EnumCases(ctx context.Context, typeRowID int64, locale string) ([]EnumCase, error) {
	rows, err := c.db.QueryContext(ctx, `
SELECT id, title, subtitle
FROM EnumerationCases
WHERE typeId = ? AND locale = ?
ORDER BY id`, typeRowID, locale)
	if err != nil {
		return nil, fmt.Errorf("query enum cases: %w", err)
	}
	defer rows.Close()

	var cases []EnumCase
	for rows.Next() {
		var ec EnumCase
		var title, subtitle sql.NullString
		if err := rows.Scan(&ec.ID, &title, &subtitle); err != nil {
			return nil, fmt.Errorf("scan enum case: %w", err)
		}
		ec.Title = title.String
		ec.Subtitle = subtitle.String
		cases = append(cases, ec)
	}

	return cases, rows.Err()
}
