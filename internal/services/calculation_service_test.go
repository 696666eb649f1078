package services

import (
	"bytes"
	"context"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"cpkcli/internal/capability"
	"cpkcli/internal/config"
)

func newTestService(t *testing.T) *CalculationService {
	t.Helper()
	return NewCalculationService(nil, config.CalculatorConfig{
		MaxUploadBytes: 1 << 20,
		MaxValues:      1000,
	}, nil)
}

func TestCalculateFromText(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	t.Run("two sided", func(t *testing.T) {
		result, err := svc.CalculateFromText(ctx, TextRequest{
			Values: "-0.1, 0, 0.1",
			USL:    capability.Float(0.3),
			LSL:    capability.Float(-0.3),
		})

		require.NoError(t, err)
		assert.Equal(t, 3, result.Summary.Count)
		require.NotNil(t, result.Cpk)
		assert.InDelta(t, 1.0, *result.Cpk, 1e-12)
	})

	t.Run("no limits gives undefined cpk", func(t *testing.T) {
		result, err := svc.CalculateFromText(ctx, TextRequest{Values: "1,2,3"})

		require.NoError(t, err)
		assert.Nil(t, result.Cpk)
		require.NotNil(t, result.Summary.Mean)
		assert.InDelta(t, 2.0, *result.Summary.Mean, 1e-12)
	})

	t.Run("garbage input degrades to empty summary", func(t *testing.T) {
		result, err := svc.CalculateFromText(ctx, TextRequest{Values: "abc, def"})

		require.NoError(t, err)
		assert.Equal(t, 0, result.Summary.Count)
		assert.Nil(t, result.Summary.Mean)
		assert.Nil(t, result.Cpk)
	})

	t.Run("empty values field is invalid input", func(t *testing.T) {
		_, err := svc.CalculateFromText(ctx, TextRequest{})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("inverted limits rejected", func(t *testing.T) {
		_, err := svc.CalculateFromText(ctx, TextRequest{
			Values: "1,2,3",
			USL:    capability.Float(-1),
			LSL:    capability.Float(1),
		})
		assert.ErrorIs(t, err, ErrInvalidLimits)
	})
}

func TestCalculateFromFile_CSV(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	result, err := svc.CalculateFromFile(ctx, FileRequest{
		Filename: "measurements.csv",
		Data:     []byte("value\n0.01\n0.02\n-0.03\n"),
		USL:      capability.Float(0.3),
		LSL:      capability.Float(-0.3),
	})

	require.NoError(t, err)
	assert.Equal(t, 3, result.Summary.Count)
	assert.NotNil(t, result.Cpk)
}

func TestCalculateFromFile_Workbook(t *testing.T) {
	f := excelize.NewFile()
	require.NoError(t, f.SetSheetRow("Sheet1", "A1", &[]interface{}{"value"}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A2", &[]interface{}{1.5}))
	require.NoError(t, f.SetSheetRow("Sheet1", "A3", &[]interface{}{2.5}))
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	require.NoError(t, f.Close())

	svc := newTestService(t)
	result, err := svc.CalculateFromFile(context.Background(), FileRequest{
		Filename: "measurements.xlsx",
		Data:     buf.Bytes(),
	})

	require.NoError(t, err)
	assert.Equal(t, 2, result.Summary.Count)
	require.NotNil(t, result.Summary.Mean)
	assert.InDelta(t, 2.0, *result.Summary.Mean, 1e-12)
}

func TestCalculateFromFile_Errors(t *testing.T) {
	svc := NewCalculationService(nil, config.CalculatorConfig{
		MaxUploadBytes: 16,
		MaxValues:      2,
	}, nil)
	ctx := context.Background()

	t.Run("file too large", func(t *testing.T) {
		_, err := svc.CalculateFromFile(ctx, FileRequest{
			Filename: "big.csv",
			Data:     bytes.Repeat([]byte("9"), 64),
		})
		assert.ErrorIs(t, err, ErrFileTooLarge)
	})

	t.Run("unsupported extension", func(t *testing.T) {
		_, err := svc.CalculateFromFile(ctx, FileRequest{
			Filename: "data.pdf",
			Data:     []byte("x"),
		})
		assert.ErrorIs(t, err, ErrUnsupportedFormat)
	})

	t.Run("corrupt workbook is invalid input", func(t *testing.T) {
		_, err := svc.CalculateFromFile(ctx, FileRequest{
			Filename: "data.xlsx",
			Data:     []byte("not a zip"),
		})
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("broken csv quoting degrades to a summary", func(t *testing.T) {
		result, err := svc.CalculateFromFile(ctx, FileRequest{
			Filename: "m.csv",
			Data:     []byte("1\n\"bad\n"),
		})
		require.NoError(t, err)
		assert.Equal(t, 1, result.Summary.Count)
	})

	t.Run("empty file degrades to empty summary", func(t *testing.T) {
		result, err := svc.CalculateFromFile(ctx, FileRequest{
			Filename: "empty.csv",
		})
		require.NoError(t, err)
		assert.Equal(t, 0, result.Summary.Count)
		assert.Nil(t, result.Cpk)
	})

	t.Run("too many values", func(t *testing.T) {
		_, err := svc.CalculateFromFile(ctx, FileRequest{
			Filename: "data.csv",
			Data:     []byte("1\n2\n3\n"),
		})
		assert.ErrorIs(t, err, ErrTooManyValues)
	})
}

func TestNormalizeLimits_NaNTreatedAsAbsent(t *testing.T) {
	svc := newTestService(t)

	result, err := svc.CalculateFromText(context.Background(), TextRequest{
		Values: "-0.1, 0, 0.1",
		USL:    capability.Float(math.NaN()),
		LSL:    capability.Float(-0.3),
	})

	require.NoError(t, err)
	assert.Nil(t, result.Limits.USL)
	require.NotNil(t, result.Cpk)
}
