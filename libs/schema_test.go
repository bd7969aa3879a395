package libs

import "testing"

type schemaSample struct {
	Label string  `json:"label" jsonschema:"enum=a,enum=b"`
	Score float64 `json:"score" jsonschema:"minimum=0,maximum=1"`
}

func TestGenerateSchema_StrictObject(t *testing.T) {
	s := GenerateSchema[schemaSample]()
	if s["type"] != "object" {
		t.Fatalf("type=%v", s["type"])
	}
	if s["additionalProperties"] != false {
		t.Fatalf("additionalProperties=%v", s["additionalProperties"])
	}
	if _, ok := s["$schema"]; ok {
		t.Fatalf("$schema should be stripped")
	}
	req, ok := s["required"].([]string)
	if !ok || len(req) != 2 || req[0] != "label" || req[1] != "score" {
		t.Fatalf("required=%#v", s["required"])
	}
	props := s["properties"].(map[string]any)
	label := props["label"].(map[string]any)
	enum, ok := label["enum"].([]any)
	if !ok || len(enum) != 2 {
		t.Fatalf("label enum=%#v", label["enum"])
	}
}
