package domain

// ImportRow is one member row decoded from an uploaded spreadsheet.
// MyLCINum is the only optional column.
type ImportRow struct {
	RegNo            string `json:"reg_no"`
	FullName         string `json:"full_name"`
	NameWithInitials string `json:"name_with_initials"`
	Batch            string `json:"batch"`
	Faculty          string `json:"faculty"`
	WhatsApp         string `json:"whatsapp"`
	MyLCINum         string `json:"my_lci_num"`
}

// ImportRowError reports a single rejected row. Row numbering matches the
// spreadsheet: data row 1 is reported as row 2 because of the header row.
type ImportRowError struct {
	Row   int       `json:"row"`
	Error string    `json:"error"`
	Data  ImportRow `json:"data"`
}

// ImportResult is the stable output contract of the bulk import pipeline.
type ImportResult struct {
	Success int              `json:"success"`
	Failed  int              `json:"failed"`
	Errors  []ImportRowError `json:"errors"`
}
