package importer

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"plate-service/internal/model"
)

// vehicleFields are summarised in this order.
var vehicleFields = []string{"color", "make", "model"}

// VehicleSummary builds a one-line description such as "Red/Blue Ford F-150"
// from the color, make and model columns of rows. Values are title-cased and
// deduplicated in first-seen order; headers match case-insensitively.
func VehicleSummary(rows []model.PlateRow) string {
	caser := cases.Title(language.Und)

	parts := make([]string, 0, len(vehicleFields))
	for _, field := range vehicleFields {
		var values []string
		seen := make(map[string]struct{})

		for _, row := range rows {
			raw, ok := lookupField(row, field)
			if !ok {
				continue
			}
			v := strings.TrimSpace(raw)
			if v == "" {
				continue
			}
			v = caser.String(v)
			if _, dup := seen[v]; dup {
				continue
			}
			seen[v] = struct{}{}
			values = append(values, v)
		}

		if len(values) > 0 {
			parts = append(parts, strings.Join(values, "/"))
		}
	}
	return strings.Join(parts, " ")
}

func lookupField(row model.PlateRow, name string) (string, bool) {
	for _, f := range row.Fields {
		if strings.ToLower(strings.TrimSpace(f.Name)) == name {
			return f.Value, true
		}
	}
	return "", false
}
