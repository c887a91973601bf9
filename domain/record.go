package domain

// Feed structure constants. Every feed is one XML document containing
// prrecord elements, one per broadcast program entry.
const (
	RecordTag = "prrecord"

	TagTitle       = "TITEL"
	TagAirDate     = "PR_AIRDATE"
	TagStartTime   = "START"
	TagDescription = "EPG"
	TagEpisodeCode = "PR_CODE"
	TagProdYear    = "JAHR"
	TagRating      = "PLRATING"
	TagGenre       = "TEMATYKA"

	// FillerTitle marks end-of-day placeholder entries. Records carrying it
	// are dropped before any field extraction.
	FillerTitle = "Zakończenie dnia"
)

// Spreadsheet layout constants. Column M holds the source URLs, columns A
// through H hold the published records, both starting below a header row.
const (
	URLColumn      = "M"
	FirstDataRow   = 2
	FirstColumn    = "A"
	LastColumn     = "H"
	SnapshotPrefix = "TVPPol_output_"
	RunLogPrefix   = "tvp_scraper_"
)

// FieldCount is the fixed width of a ProgramRecord row.
const FieldCount = 8

// ProgramRecord is one broadcast program entry. All fields are strings;
// missing optional source fields are empty strings.
type ProgramRecord struct {
	AirDate     string
	StartTime   string
	Title       string
	Description string
	EpisodeCode string
	ProdYear    string
	Rating      string
	Genre       string
}

// Row returns the record as an ordered fixed-width row, in spreadsheet and
// snapshot column order.
func (r ProgramRecord) Row() []string {
	return []string{
		r.AirDate,
		r.StartTime,
		r.Title,
		r.Description,
		r.EpisodeCode,
		r.ProdYear,
		r.Rating,
		r.Genre,
	}
}

// RecordFromRow builds a ProgramRecord from a row, padding short rows with
// empty strings. Extra cells beyond FieldCount are ignored.
func RecordFromRow(row []string) ProgramRecord {
	padded := make([]string, FieldCount)
	copy(padded, row)

	return ProgramRecord{
		AirDate:     padded[0],
		StartTime:   padded[1],
		Title:       padded[2],
		Description: padded[3],
		EpisodeCode: padded[4],
		ProdYear:    padded[5],
		Rating:      padded[6],
		Genre:       padded[7],
	}
}

// Dataset is an ordered sequence of program records, concatenated across all
// source feeds in URL-list order, then document order within each feed.
type Dataset []ProgramRecord

// Rows converts the dataset to spreadsheet rows.
func (d Dataset) Rows() [][]string {
	rows := make([][]string, 0, len(d))
	for _, rec := range d {
		rows = append(rows, rec.Row())
	}
	return rows
}

// DatasetFromRows builds a dataset from spreadsheet rows, padding each row
// to the fixed field count.
func DatasetFromRows(rows [][]string) Dataset {
	dataset := make(Dataset, 0, len(rows))
	for _, row := range rows {
		dataset = append(dataset, RecordFromRow(row))
	}
	return dataset
}
