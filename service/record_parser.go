package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/beevik/etree"

	"tvp-scraper/domain"
)

// optionalFields maps each optional feed tag to the warning logged when a
// record lacks it, matching the column it feeds.
var optionalFields = []struct {
	tag     string
	warning string
}{
	{domain.TagAirDate, "Missing tag: PR_AIRDATE. TX DATE WILL BE EMPTY, CHECK OUTPUT!"},
	{domain.TagStartTime, "Missing tag: START. TX TIME WILL BE EMPTY, CHECK OUTPUT!"},
	{domain.TagDescription, "Missing tag: EPG. EPG description will be empty."},
	{domain.TagEpisodeCode, "Missing tag: PR_CODE. Episode ID will be empty."},
	{domain.TagProdYear, "Missing tag: JAHR. Production year field will be empty."},
	{domain.TagRating, "Missing tag: PLRATING. Ratings field will be empty."},
	{domain.TagGenre, "Missing tag: TEMATYKA. Genre field will be empty."},
}

// recordParserService implementation.
type recordParserService struct {
	logger *slog.Logger
}

// NewRecordParser creates a record parser.
func NewRecordParser(logger *slog.Logger) RecordParser {
	return &recordParserService{logger: logger}
}

// Parse extracts program records from one feed document. Records titled
// with the end-of-day filler marker are dropped. Optional fields degrade
// to empty strings with one warning per missing field per record; a record
// without a title element fails the whole parse.
func (s *recordParserService) Parse(ctx context.Context, feed []byte) (domain.Dataset, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromBytes(feed); err != nil {
		return nil, fmt.Errorf("failed to parse feed XML: %w", err)
	}

	records := doc.FindElements("//" + domain.RecordTag)

	// Pre-filter count, checked against the output downstream.
	s.logger.Info("Count of records", "count", len(records))

	dataset := make(domain.Dataset, 0, len(records))

	for i, record := range records {
		titleElem := record.FindElement(".//" + domain.TagTitle)
		if titleElem == nil {
			return nil, fmt.Errorf("%w: record %d", domain.ErrTitleMissing, i)
		}

		title := titleElem.Text()
		if title == domain.FillerTitle {
			continue
		}

		fields := make([]string, 0, domain.FieldCount-1)
		for _, opt := range optionalFields {
			elem := record.FindElement(".//" + opt.tag)
			if elem == nil {
				s.logger.Warn(opt.warning, "record", i)
				fields = append(fields, "")
				continue
			}
			fields = append(fields, elem.Text())
		}

		dataset = append(dataset, domain.ProgramRecord{
			AirDate:     fields[0],
			StartTime:   fields[1],
			Title:       title,
			Description: fields[2],
			EpisodeCode: fields[3],
			ProdYear:    fields[4],
			Rating:      fields[5],
			Genre:       fields[6],
		})
	}

	return dataset, nil
}
