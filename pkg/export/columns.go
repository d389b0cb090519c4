package export

import (
	"fmt"
	"strconv"
	"time"

	"github.com/clavisnova/submissions/pkg/model"
)

// layout fixes the sheet name, file name, header accent color, column
// set, and row projection for one entity kind. The column order is
// identical in spreadsheet and CSV mode.
type layout struct {
	sheet    string
	filename string // base name, extension added by the renderer
	fill     string
	headers  []string
	row      func(e model.Entity) []string
}

func layoutFor(kind model.Kind) (layout, error) {
	switch kind {
	case model.KindRegistration:
		return layout{
			sheet:    "Piano Registrations",
			filename: "piano_registrations",
			fill:     "2E86C1",
			headers: []string{
				"ID", "Manufacturer", "Model", "Serial #", "Year", "Type", "Height",
				"Finish", "Condition", "Color/Wood", "City/State", "Access", "IP Address", "Created At", "Updated At",
			},
			row: registrationRow,
		}, nil
	case model.KindRequirements:
		return layout{
			sheet:    "Requirements",
			filename: "requirements",
			fill:     "28B463",
			headers: []string{
				"ID", "School Name", "Current Pianos", "Preferred Type", "Teacher Name", "Background", "Commitment",
				"IP Address", "Created At", "Updated At",
			},
			row: requirementsRow,
		}, nil
	case model.KindContact:
		return layout{
			sheet:    "Contacts",
			filename: "contacts",
			fill:     "884EA0",
			headers: []string{
				"ID", "Name", "Email", "Message", "IP Address", "Created At", "Updated At",
			},
			row: contactRow,
		}, nil
	case model.KindSystemLog:
		return layout{
			sheet:    "System Logs",
			filename: "system_logs",
			fill:     "B03A2E",
			headers: []string{
				"ID", "Level", "Message", "Data", "Created At",
			},
			row: systemLogRow,
		}, nil
	}
	return layout{}, fmt.Errorf("no export layout for entity kind %q", kind)
}

// registrationRow projects a registration. The Type and Height columns
// both read the stored height field, and Finish and Condition both read
// the stored finish field; that mapping mirrors the current schema and
// is intentional.
func registrationRow(e model.Entity) []string {
	r := e.(*model.Registration)
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.Manufacturer,
		r.Model,
		r.Serial,
		yearText(r.Year),
		r.Height,
		r.Height,
		r.Finish,
		r.Finish,
		r.ColorWood,
		r.CityState,
		r.Access,
		r.IPAddress,
		timeText(r.CreatedAt),
		timeText(r.UpdatedAt),
	}
}

func requirementsRow(e model.Entity) []string {
	r := e.(*model.Requirements)
	return []string{
		strconv.FormatInt(r.ID, 10),
		r.SchoolName,
		r.CurrentPianos,
		r.PreferredType,
		r.TeacherName,
		r.Background,
		r.Commitment,
		r.IPAddress,
		timeText(r.CreatedAt),
		timeText(r.UpdatedAt),
	}
}

func contactRow(e model.Entity) []string {
	c := e.(*model.Contact)
	return []string{
		strconv.FormatInt(c.ID, 10),
		c.Name,
		c.Email,
		c.Message,
		c.IPAddress,
		timeText(c.CreatedAt),
		timeText(c.UpdatedAt),
	}
}

func systemLogRow(e model.Entity) []string {
	l := e.(*model.SystemLog)
	return []string{
		strconv.FormatInt(l.ID, 10),
		l.Level,
		l.Message,
		l.Data,
		timeText(l.CreatedAt),
	}
}

func yearText(year int) string {
	if year == 0 {
		return ""
	}
	return strconv.Itoa(year)
}

// timeText renders a timestamp column: RFC 3339 text, or empty when the
// store never set it.
func timeText(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
