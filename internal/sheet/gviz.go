package sheet

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/sbhworks/indentflow/internal/schema"
)

// The gviz query endpoint wraps its JSON payload in a JS callback:
//
//	/*O_o*/
//	google.visualization.Query.setResponse({...});
//
// stripWrapper cuts the body down to the substring between the first '{' and
// the last '}' before decoding.

type gvizResponse struct {
	Status string    `json:"status"`
	Table  gvizTable `json:"table"`
}

type gvizTable struct {
	Rows []gvizRow `json:"rows"`
}

type gvizRow struct {
	Cells []*gvizCell `json:"c"`
}

type gvizCell struct {
	Value     any    `json:"v"`
	Formatted string `json:"f"`
}

func stripWrapper(body []byte) ([]byte, error) {
	s := string(body)
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start < 0 || end < start {
		return nil, fmt.Errorf("response is not a wrapped JSON payload")
	}
	return []byte(s[start : end+1]), nil
}

func parseGviz(body []byte) ([]schema.Row, error) {
	jsonBody, err := stripWrapper(body)
	if err != nil {
		return nil, err
	}

	var resp gvizResponse
	if err := json.Unmarshal(jsonBody, &resp); err != nil {
		return nil, fmt.Errorf("decode gviz payload: %w", err)
	}
	if resp.Status != "" && resp.Status != "ok" {
		return nil, fmt.Errorf("gviz query status %q", resp.Status)
	}

	rows := make([]schema.Row, 0, len(resp.Table.Rows))
	for _, r := range resp.Table.Rows {
		row := make(schema.Row, len(r.Cells))
		for i, c := range r.Cells {
			row[i] = cellString(c)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// cellString flattens a gviz cell to its display string. The raw value wins;
// the formatted value covers cells where gviz only ships a rendered string.
func cellString(c *gvizCell) string {
	if c == nil {
		return ""
	}
	switch v := c.Value.(type) {
	case string:
		return v
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case bool:
		return strconv.FormatBool(v)
	case nil:
		return c.Formatted
	default:
		return fmt.Sprint(v)
	}
}
