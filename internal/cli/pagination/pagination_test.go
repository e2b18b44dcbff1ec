package pagination

import (
	"testing"
	"time"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rshade/carbontrack/internal/activity"
	"github.com/rshade/carbontrack/internal/factors"
)

func TestParams_Validate(t *testing.T) {
	tests := []struct {
		name    string
		params  Params
		wantErr bool
		errMsg  string
	}{
		{name: "zero value", params: Params{}},
		{name: "valid offset mode", params: Params{Limit: 10, Offset: 20}},
		{name: "valid page mode", params: Params{Page: 2, PageSize: 10}},
		{name: "valid sort", params: Params{Sort: "co2e:desc"}},
		{name: "negative limit", params: Params{Limit: -1}, wantErr: true, errMsg: "limit cannot be negative"},
		{name: "negative offset", params: Params{Offset: -1}, wantErr: true, errMsg: "offset cannot be negative"},
		{name: "negative page", params: Params{Page: -1}, wantErr: true, errMsg: "page cannot be negative"},
		{
			name:    "negative page-size",
			params:  Params{PageSize: -1},
			wantErr: true,
			errMsg:  "page-size cannot be negative",
		},
		{
			name:    "mixed modes",
			params:  Params{Page: 1, PageSize: 5, Offset: 10},
			wantErr: true,
			errMsg:  "mutually exclusive",
		},
		{
			name:    "page-size without page",
			params:  Params{PageSize: 5},
			wantErr: true,
			errMsg:  "page must be specified",
		},
		{
			name:    "page without page-size",
			params:  Params{Page: 2},
			wantErr: true,
			errMsg:  "page-size must be specified",
		},
		{name: "bad sort order", params: Params{Sort: "co2e:up"}, wantErr: true, errMsg: "sort order"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestApply(t *testing.T) {
	items := []int{1, 2, 3, 4, 5, 6, 7}

	tests := []struct {
		name   string
		params Params
		want   []int
	}{
		{name: "no pagination", params: Params{}, want: items},
		{name: "limit only", params: Params{Limit: 3}, want: []int{1, 2, 3}},
		{name: "offset and limit", params: Params{Offset: 2, Limit: 2}, want: []int{3, 4}},
		{name: "offset only", params: Params{Offset: 5}, want: []int{6, 7}},
		{name: "offset past end", params: Params{Offset: 10}, want: []int{}},
		{name: "first page", params: Params{Page: 1, PageSize: 3}, want: []int{1, 2, 3}},
		{name: "last partial page", params: Params{Page: 3, PageSize: 3}, want: []int{7}},
		{name: "page past end", params: Params{Page: 4, PageSize: 3}, want: []int{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Apply(tt.params, items))
		})
	}

	assert.Empty(t, Apply(Params{}, []int(nil)))
}

func TestNewMeta(t *testing.T) {
	meta := NewMeta(Params{Page: 2, PageSize: 3}, 7)
	assert.Equal(t, Meta{
		CurrentPage: 2,
		PageSize:    3,
		TotalPages:  3,
		TotalItems:  7,
		HasPrevious: true,
		HasNext:     true,
	}, meta)

	meta = NewMeta(Params{Offset: 4, Limit: 2}, 7)
	assert.Equal(t, 3, meta.CurrentPage)
	assert.Equal(t, 4, meta.TotalPages)

	meta = NewMeta(Params{}, 5)
	assert.Equal(t, 1, meta.CurrentPage)
	assert.Equal(t, 1, meta.TotalPages)
	assert.False(t, meta.HasNext)

	meta = NewMeta(Params{}, 0)
	assert.Equal(t, 0, meta.TotalPages)
	assert.False(t, meta.HasPrevious)
}

func TestParseSort(t *testing.T) {
	field, order, err := ParseSort("co2e")
	require.NoError(t, err)
	assert.Equal(t, "co2e", field)
	assert.Equal(t, SortOrderAsc, order)

	field, order, err = ParseSort(" created : DESC ")
	require.NoError(t, err)
	assert.Equal(t, "created", field)
	assert.Equal(t, SortOrderDesc, order)

	_, _, err = ParseSort("a:b:c")
	require.ErrorIs(t, err, ErrInvalidSortFormat)

	_, _, err = ParseSort(":asc")
	require.ErrorIs(t, err, ErrEmptySortField)
}

func TestRecordSorter(t *testing.T) {
	base := time.UnixMilli(1_700_000_000_000)
	records := []activity.Record{
		{ID: "a", Category: factors.Food, CO2e: 14, Description: "Meat - 2 kg", CreatedAt: base},
		{ID: "b", Category: factors.Transport, CO2e: 17, Description: "Car - 100 km", CreatedAt: base.Add(time.Hour)},
		{ID: "c", Category: factors.Energy, CO2e: 4, Description: "Electricity - 10 kWh", CreatedAt: base.Add(-time.Hour)},
		{ID: "d", Category: factors.Transport, CO2e: 4, Description: "Bus - 50 km", CreatedAt: base},
	}
	sorter := NewRecordSorter()

	ids := func(rs []activity.Record) []string {
		out := make([]string, len(rs))
		for i, r := range rs {
			out[i] = r.ID
		}
		return out
	}

	assert.Equal(t, []string{"c", "d", "a", "b"}, ids(sorter.Sort(records, FieldCO2e, SortOrderAsc)))
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(sorter.Sort(records, FieldCO2e, SortOrderDesc)))
	assert.Equal(t, []string{"b", "d", "a", "c"}, ids(sorter.Sort(records, FieldCategory, SortOrderAsc)))
	assert.Equal(t, []string{"c", "a", "d", "b"}, ids(sorter.Sort(records, FieldCreated, SortOrderAsc)))
	assert.Equal(t, []string{"d", "b", "c", "a"}, ids(sorter.Sort(records, FieldDescription, SortOrderAsc)))

	// Input untouched, unknown field is a no-op.
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(records))
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(sorter.Sort(records, "bogus", SortOrderAsc)))

	sorted, err := sorter.SortExpression(records, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c", "d"}, ids(sorted))

	_, err = sorter.SortExpression(records, "bogus")
	require.ErrorIs(t, err, ErrInvalidSortField)

	assert.Equal(t, []string{"category", "co2e", "created", "description"}, sorter.GetValidFields())
}

func TestParams_AddFlags(t *testing.T) {
	var p Params
	cmd := &cobra.Command{Use: "x", RunE: func(*cobra.Command, []string) error { return nil }}
	p.AddFlags(cmd)

	cmd.SetArgs([]string{"--page", "2", "--page-size", "5", "--sort", "co2e:desc"})
	require.NoError(t, cmd.Execute())
	assert.Equal(t, Params{Page: 2, PageSize: 5, Sort: "co2e:desc"}, p)
}
