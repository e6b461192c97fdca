package pagination

import (
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
)

func TestNormalize(t *testing.T) {
	cases := []struct {
		name       string
		page, size int
		wantPage   int
		wantSize   int
		wantOffset int
	}{
		{"defaults kept", 1, 5, 1, 5, 0},
		{"zero page clamps to first", 0, 10, 1, 10, 0},
		{"negative page clamps to first", -3, 10, 1, 10, 0},
		{"zero size falls back to default", 2, 0, 2, 5, 5},
		{"oversized page size capped", 1, 500, 1, 50, 0},
		{"offset from later page", 4, 20, 4, 20, 60},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Normalize(tc.page, tc.size)
			if got.Page != tc.wantPage || got.Size != tc.wantSize || got.Offset != tc.wantOffset {
				t.Errorf("Normalize(%d, %d) = %+v, want page=%d size=%d offset=%d",
					tc.page, tc.size, got, tc.wantPage, tc.wantSize, tc.wantOffset)
			}
		})
	}
}

func TestParse(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/patients?pageNumber=3&pageSize=25", nil)

	got := Parse(c)
	if got.Page != 3 || got.Size != 25 || got.Offset != 50 {
		t.Errorf("Parse = %+v, want page=3 size=25 offset=50", got)
	}
}

func TestParseGarbageInput(t *testing.T) {
	gin.SetMode(gin.TestMode)

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	c.Request = httptest.NewRequest("GET", "/patients?pageNumber=abc&pageSize=-1", nil)

	got := Parse(c)
	if got.Page != DefaultPage || got.Size != DefaultSize {
		t.Errorf("Parse garbage = %+v, want defaults", got)
	}
}
