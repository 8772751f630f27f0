package domain

import (
	"encoding/json"
	"reflect"
	"strings"
	"testing"
)

func TestProfileLabel(t *testing.T) {
	tests := []struct {
		name     string
		json     string
		index    int
		expected string
	}{
		{
			name:     "alias wins",
			json:     `{"alias":"Prod","name":"prod-main","type":"postgres","host":"db1","port":5432,"database":"app"}`,
			index:    0,
			expected: "Prod (postgres) - db1:5432 (app)",
		},
		{
			name:     "name when alias missing",
			json:     `{"name":"reporting","type":"mysql","host":"db2","port":"3306","database":"stats"}`,
			index:    1,
			expected: "reporting (mysql) - db2:3306 (stats)",
		},
		{
			name:     "fallbacks for alias, name, type and database",
			json:     `{"host":"10.0.0.5","port":1521}`,
			index:    2,
			expected: "resource 3 (unknown) - 10.0.0.5:1521 (default)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var p Profile
			if err := json.Unmarshal([]byte(tt.json), &p); err != nil {
				t.Fatalf("unmarshal failed: %v", err)
			}
			if got := p.Label(tt.index); got != tt.expected {
				t.Errorf("Label() = %q, want %q", got, tt.expected)
			}
		})
	}
}

func TestProfileKeepsUnknownMembers(t *testing.T) {
	input := `{"id":"4f1c","is_default":true,"user":"postgres","host":"db1","port":"5432","password":"enc:abc","tags":{"env":"prod"}}`

	var p Profile
	if err := json.Unmarshal([]byte(input), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	expected := `{"host":"db1","port":"5432","password":"enc:abc","id":"4f1c","is_default":true,"tags":{"env":"prod"},"user":"postgres"}`
	if string(out) != expected {
		t.Errorf("marshal output mismatch\n got: %s\nwant: %s", out, expected)
	}
}

func TestProfileDoesNotInjectDefaults(t *testing.T) {
	var p Profile
	if err := json.Unmarshal([]byte(`{"host":"db1","port":5432}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	out, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	for _, field := range []string{"type", "database", "alias", "name"} {
		if strings.Contains(string(out), `"`+field+`"`) {
			t.Errorf("expected %q to stay absent, got %s", field, out)
		}
	}
}

func TestProfileKeepsNullKnownMembers(t *testing.T) {
	var p Profile
	if err := json.Unmarshal([]byte(`{"alias":null,"host":"db1","port":null}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if p.DisplayName(0) != "resource 1" {
		t.Errorf("null alias should fall back, got %q", p.DisplayName(0))
	}

	out, _ := json.Marshal(p)
	if string(out) != `{"host":"db1","alias":null,"port":null}` {
		t.Errorf("unexpected output: %s", out)
	}
}

func TestProfileCredentialNotEscaped(t *testing.T) {
	var p Profile
	if err := json.Unmarshal([]byte(`{"host":"h","password":"a<b>&c"}`), &p); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	out, _ := p.MarshalJSON()
	if !strings.Contains(string(out), `"a<b>&c"`) {
		t.Errorf("password should be written verbatim, got %s", out)
	}
}

func TestProfileKeepsMistypedKnownMembers(t *testing.T) {
	input := `[
		{"alias":"Prod","type":"postgres","host":"db1","port":5432,"database":"app"},
		{"alias":7,"type":"mysql","host":"db2","port":true,"database":0,"password":"pw"}
	]`

	var list ProfileList
	if err := json.Unmarshal([]byte(input), &list); err != nil {
		t.Fatalf("a mistyped member must not fail the whole list: %v", err)
	}
	if len(list) != 2 {
		t.Fatalf("expected 2 profiles, got %d", len(list))
	}

	if got := list[1].Label(1); got != "7 (mysql) - db2:true (0)" {
		t.Errorf("unexpected label %q", got)
	}
	for _, field := range []string{"alias", "port", "database"} {
		if _, ok := list[1].Extra[field]; !ok {
			t.Errorf("expected %q to be kept verbatim", field)
		}
	}

	out, err := json.Marshal(list)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	var again ProfileList
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("unmarshal of export failed: %v", err)
	}
	if !reflect.DeepEqual(again, list) {
		t.Errorf("round trip mismatch\n got: %+v\nwant: %+v", again, list)
	}
	if !strings.Contains(string(out), `"alias":7`) || !strings.Contains(string(out), `"port":true`) {
		t.Errorf("mistyped members should be exported unchanged, got %s", out)
	}
}

func TestProfileRejectsNonObject(t *testing.T) {
	var list ProfileList
	if err := json.Unmarshal([]byte(`["db1"]`), &list); err == nil {
		t.Error("expected error for non-object entry")
	}
}

func TestProfileCloneIsDeep(t *testing.T) {
	var original Profile
	if err := json.Unmarshal([]byte(`{"host":"db1","port":5432,"opts":{"ssl":true}}`), &original); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	clone := original.Clone()
	if !reflect.DeepEqual(original, clone) {
		t.Fatal("clone should equal original")
	}

	original.Extra["opts"][2] = 'X'
	original.Extra["new"] = json.RawMessage(`1`)
	original.Port.raw[0] = '9'
	original.Host = "changed"

	if string(clone.Extra["opts"]) != `{"ssl":true}` {
		t.Errorf("clone extra changed: %s", clone.Extra["opts"])
	}
	if _, ok := clone.Extra["new"]; ok {
		t.Error("clone extra map shared with original")
	}
	if clone.Port.String() != "5432" {
		t.Errorf("clone port changed: %s", clone.Port.String())
	}
	if clone.Host != "db1" {
		t.Errorf("clone host changed: %s", clone.Host)
	}
}

func TestProfileListRoundTrip(t *testing.T) {
	input := `[
		{"alias":"Prod","type":"postgres","host":"db1","port":5432,"database":"app","password":"s3cret"},
		{"name":"legacy","host":"db2","port":"1433","user":"sa","password":"p@ss","id":"x1"},
		{"host":"db3","port":3306,"nested":{"a":[1,2,{"b":null}]}}
	]`

	var list ProfileList
	if err := json.Unmarshal([]byte(input), &list); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	out, err := json.MarshalIndent(list, "", "  ")
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}

	var again ProfileList
	if err := json.Unmarshal(out, &again); err != nil {
		t.Fatalf("second unmarshal failed: %v", err)
	}

	if !reflect.DeepEqual(list, again) {
		t.Errorf("round trip mismatch\nfirst:  %+v\nsecond: %+v", list, again)
	}
}
