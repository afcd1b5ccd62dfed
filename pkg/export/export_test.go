package export

import (
	"bytes"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/jakechorley/shifttrack/pkg/core/model"
)

func ptr(f float64) *float64 { return &f }

func sampleShifts() []model.Shift {
	return []model.Shift{
		{
			UserName:     "Ana López",
			UserRole:     "Supervisor",
			UserEmail:    "ana@corp.com",
			Date:         "2024-01-15",
			StartTime:    "09:00",
			EndDate:      "2024-01-15",
			EndTime:      "17:30",
			Duration:     "08:30:00",
			Seconds:      30600,
			Status:       "Cerrado",
			CommentStart: `said "hi"`,
			Latitude:     ptr(40.7128),
			Longitude:    ptr(-74.006),
		},
		{
			UserName:     "Bo",
			UserRole:     "Sin rol",
			Date:         "2024-01-16",
			StartTime:    "08:00",
			EndDate:      "---",
			Duration:     "00:00:00",
			Status:       "en curso",
			IsInProgress: true,
			LatitudeEnd:  ptr(41.1),
			LongitudeEnd: ptr(-3.7),
		},
	}
}

func golden(t *testing.T) *goldie.Goldie {
	return goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
}

func TestWriteCSV_Golden(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, sampleShifts()))

	golden(t).Assert(t, "report_csv", buf.Bytes())
}

func TestWriteCSV_NoShifts(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, nil))

	golden(t).Assert(t, "empty_csv", buf.Bytes())
}

func TestPointLink(t *testing.T) {
	assert.Equal(t, "", PointLink(nil, ptr(1)))
	assert.Equal(t, "", PointLink(ptr(1), nil))
	assert.Equal(t, "https://www.google.com/maps/search/?api=1&query=0,0", PointLink(ptr(0), ptr(0)))
}

func TestEmbedMapURL(t *testing.T) {
	assert.Equal(t,
		"https://maps.google.com/maps?q=40.7128,-74.006&hl=es&z=15&ie=UTF8&iwloc=near&output=embed",
		EmbedMapURL(ptr(40.7128), ptr(-74.006), "es"))
	assert.Equal(t, "", EmbedMapURL(nil, nil, "en"))
}

func TestFilename(t *testing.T) {
	day := time.Date(2024, 3, 9, 23, 0, 0, 0, time.UTC)
	assert.Equal(t, "Report_ShiftTrack_2024-03-09.csv", Filename(day, FormatCSV))
	assert.Equal(t, "Report_ShiftTrack_2024-03-09.xlsx", Filename(day, FormatXLSX))
}

func TestValues(t *testing.T) {
	values := Values(sampleShifts())

	require.Len(t, values, 3)
	assert.Equal(t, "Employee", values[0][0])
	assert.Equal(t, int64(30600), values[1][secondsColumn])
	assert.Len(t, values[2], len(Headers))
}

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteXLSX(&buf, sampleShifts()))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(xlsxSheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, "Ana López", rows[1][0])
	assert.Equal(t, "30600", rows[1][secondsColumn])
	assert.Equal(t, `said "hi"`, rows[1][10])
}

func TestWrite_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	err := Write(&buf, Format("pdf"), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported export format")
	assert.False(t, Format("pdf").IsValid())
	assert.True(t, FormatXLSX.IsValid())
}
