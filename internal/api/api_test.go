package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dipdaga/patina/internal/models"
	"github.com/dipdaga/patina/internal/testutil"
)

func testEnv(t *testing.T, records []models.Record) (*Service, http.Handler) {
	t.Helper()
	svc := NewService(records, 60, 30, []string{"Delhi"})
	return svc, NewRouter(svc, nil)
}

func get(t *testing.T, router http.Handler, target string, out any) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, req)
	if out != nil && rr.Code == http.StatusOK {
		if err := json.Unmarshal(rr.Body.Bytes(), out); err != nil {
			t.Fatalf("decode %s: %v", target, err)
		}
	}
	return rr
}

func TestListCatalog(t *testing.T) {
	_, router := testEnv(t, testutil.Records(3, "Delhi"))

	var resp CatalogResponse
	rr := get(t, router, "/catalog", &resp)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if resp.Total != 3 || len(resp.Records) != 3 {
		t.Errorf("total = %d, records = %d, want 3/3", resp.Total, len(resp.Records))
	}
}

func TestView_PaginatesAndCanonicalizes(t *testing.T) {
	_, router := testEnv(t, testutil.Records(65, "Delhi"))

	var resp ViewResponse
	get(t, router, "/view?p=2", &resp)
	if len(resp.Records) != 65 {
		t.Errorf("records = %d, want 65 across two pages", len(resp.Records))
	}
	if resp.Page != 2 {
		t.Errorf("page = %d, want 2", resp.Page)
	}
	if resp.Query != "p=2" {
		t.Errorf("canonical query = %q, want p=2", resp.Query)
	}
	if resp.Columns != nil {
		t.Errorf("columns present without w param")
	}
}

func TestView_FiltersByTag(t *testing.T) {
	records := testutil.Records(5)
	records[1].Tags = []string{"Delhi"}
	records[4].Tags = []string{"Delhi"}
	_, router := testEnv(t, records)

	var resp ViewResponse
	get(t, router, "/view?tags=Delhi", &resp)
	if len(resp.Records) != 2 || resp.Total != 2 {
		t.Fatalf("records = %d, total = %d, want 2/2", len(resp.Records), resp.Total)
	}
	if resp.Records[0].ID != "2" || resp.Records[1].ID != "5" {
		t.Errorf("catalog order not preserved: %s, %s", resp.Records[0].ID, resp.Records[1].ID)
	}
}

func TestView_ColumnsWithWidth(t *testing.T) {
	_, router := testEnv(t, testutil.Records(10))

	var resp ViewResponse
	get(t, router, "/view?w=900", &resp)
	if len(resp.Columns) != 3 {
		t.Fatalf("columns = %d, want 3 for width 900", len(resp.Columns))
	}
	placed := 0
	for _, col := range resp.Columns {
		placed += len(col)
	}
	if placed != 10 {
		t.Errorf("placed = %d, want 10", placed)
	}
}

func TestView_EmptyCatalogReturnsEmptyArray(t *testing.T) {
	_, router := testEnv(t, nil)

	rr := get(t, router, "/view", nil)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(rr.Body.Bytes(), &raw); err != nil {
		t.Fatal(err)
	}
	if string(raw["records"]) != "[]" {
		t.Errorf("records = %s, want []", raw["records"])
	}
}

func TestTags_ChipsAndSelection(t *testing.T) {
	records := testutil.Records(4)
	records[0].Tags = []string{"Street"}
	records[1].Tags = []string{"Street", "1920s"}
	records[2].Tags = []string{"Fort"}
	_, router := testEnv(t, records)

	var resp TagsResponse
	get(t, router, "/tags?tags=Street", &resp)

	if len(resp.Chips) == 0 {
		t.Fatal("no chips")
	}
	if resp.Chips[0].Tag != "Delhi" {
		t.Errorf("first chip = %q, want curated Delhi", resp.Chips[0].Tag)
	}
	for _, chip := range resp.Chips {
		if chip.Tag == "1920s" {
			t.Error("numeric tag in chip list")
		}
		if chip.Tag == "Street" && !chip.Selected {
			t.Error("Street chip not marked selected")
		}
	}
	if resp.Total != 3 {
		t.Errorf("total distinct tags = %d, want 3", resp.Total)
	}
}

func TestTags_ConfiguredChipCountBoundsStrip(t *testing.T) {
	records := testutil.Records(4)
	records[0].Tags = []string{"Street"}
	records[1].Tags = []string{"Street", "Fort"}
	records[2].Tags = []string{"Harbour"}
	svc := NewService(records, 60, 2, nil)
	router := NewRouter(svc, nil)

	var resp TagsResponse
	get(t, router, "/tags", &resp)
	if len(resp.Chips) != 2 {
		t.Fatalf("chips = %d, want configured count 2", len(resp.Chips))
	}

	// An explicit n still overrides the configured default.
	get(t, router, "/tags?n=1", &resp)
	if len(resp.Chips) != 1 {
		t.Errorf("chips = %d with n=1, want 1", len(resp.Chips))
	}
}

func TestGetRecord(t *testing.T) {
	_, router := testEnv(t, testutil.Records(2))

	var rec models.Record
	rr := get(t, router, "/records/2", &rec)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if rec.ID != "2" {
		t.Errorf("id = %q, want 2", rec.ID)
	}

	rr = get(t, router, "/records/999", nil)
	if rr.Code != http.StatusNotFound {
		t.Errorf("stale id status = %d, want 404", rr.Code)
	}
}

func TestSetRecords_SwapsSnapshot(t *testing.T) {
	svc, router := testEnv(t, testutil.Records(1))
	svc.SetRecords(testutil.Records(8, "Fresh"))

	var resp CatalogResponse
	get(t, router, "/catalog", &resp)
	if resp.Total != 8 {
		t.Errorf("total = %d after swap, want 8", resp.Total)
	}

	var tagsResp TagsResponse
	get(t, router, "/tags", &tagsResp)
	found := false
	for _, chip := range tagsResp.Chips {
		if chip.Tag == "Fresh" && chip.Count == 8 {
			found = true
		}
	}
	if !found {
		t.Error("rebuilt index missing Fresh tag")
	}
}
