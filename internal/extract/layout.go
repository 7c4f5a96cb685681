package extract

// Layout is the recognized structure of a document page set: plain text plus
// any detected tables, form key/value pairs, and entities. Strategies consume
// a Layout; how it was produced (OCR engine, mock) is the reader's concern.
type Layout struct {
	Text       string
	Tables     []Table
	FormFields []FormField
	Entities   []Entity
}

// Table holds header rows and body rows of one detected table.
type Table struct {
	Headers [][]string
	Rows    [][]string
}

// FormField is one detected key/value pair on a form.
type FormField struct {
	Key        string
	Value      string
	Confidence int
}

// Entity is one extracted entity, e.g. a date mention.
type Entity struct {
	Type       string
	Mention    string
	Confidence int
}
