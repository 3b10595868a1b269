package docs

import "strings"

type fieldMask struct {
	fields []string
}

func (m *fieldMask) add(field string) {
	m.fields = append(m.fields, field)
}

func (m *fieldMask) empty() bool {
	return len(m.fields) == 0
}

func (m *fieldMask) String() string {
	return strings.Join(m.fields, ",")
}
