package spreadsheet

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestParseMemberRows_ReadsTemplateExamples(t *testing.T) {
	file, err := BuildTemplate()
	require.NoError(t, err)
	defer file.Close()

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	rows, err := ParseMemberRows(&buf)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "S/2021/001", rows[0].RegNo)
	assert.Equal(t, "John Doe Smith", rows[0].FullName)
	assert.Equal(t, "12345678", rows[0].MyLCINum)
	assert.Equal(t, "S/2021/002", rows[1].RegNo)
	assert.Equal(t, "", rows[1].MyLCINum)
}

func TestParseMemberRows_IgnoresUnknownColumnsAndShortRows(t *testing.T) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	require.NoError(t, file.SetSheetRow(sheet, "A1", &[]interface{}{"reg_no", "full_name", "nickname", "whatsapp"}))
	require.NoError(t, file.SetSheetRow(sheet, "A2", &[]interface{}{"S/2021/001", "John Smith", "Johnny", "+94770000000"}))
	// Trailing cells omitted entirely.
	require.NoError(t, file.SetSheetRow(sheet, "A3", &[]interface{}{"S/2021/002"}))

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	rows, err := ParseMemberRows(&buf)
	require.NoError(t, err)

	require.Len(t, rows, 2)
	assert.Equal(t, "S/2021/001", rows[0].RegNo)
	assert.Equal(t, "John Smith", rows[0].FullName)
	assert.Equal(t, "+94770000000", rows[0].WhatsApp)
	assert.Equal(t, "S/2021/002", rows[1].RegNo)
	assert.Equal(t, "", rows[1].WhatsApp)
}

func TestParseMemberRows_HeaderOnly(t *testing.T) {
	file := excelize.NewFile()
	defer file.Close()

	sheet := file.GetSheetName(0)
	require.NoError(t, file.SetSheetRow(sheet, "A1", &[]interface{}{"reg_no", "full_name"}))

	var buf bytes.Buffer
	require.NoError(t, file.Write(&buf))

	rows, err := ParseMemberRows(&buf)
	require.NoError(t, err)

	assert.Empty(t, rows)
}

func TestParseMemberRows_RejectsGarbage(t *testing.T) {
	_, err := ParseMemberRows(bytes.NewReader([]byte("not a workbook")))

	assert.Error(t, err)
}
