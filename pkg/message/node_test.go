package message

import (
	"testing"

	"github.com/shapestone/shape-core/pkg/ast"
)

func TestRequestToNode(t *testing.T) {
	req, err := ParseRequest([]byte("GET /hello?name=Amelia HTTP/1.1\r\nHost: example.com\r\n\r\n"))
	if err != nil {
		t.Fatalf("ParseRequest() error = %v", err)
	}

	node := RequestToNode(req)
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		t.Fatalf("expected ObjectNode, got %T", node)
	}

	props := obj.Properties()
	if lit := props["type"].(*ast.LiteralNode); lit.Value() != "request" {
		t.Errorf("type = %v, want request", lit.Value())
	}
	if lit := props["method"].(*ast.LiteralNode); lit.Value() != "GET" {
		t.Errorf("method = %v, want GET", lit.Value())
	}
	if lit := props["target"].(*ast.LiteralNode); lit.Value() != "/hello?name=Amelia" {
		t.Errorf("target = %v, want /hello?name=Amelia", lit.Value())
	}
}

func TestResponseToNode(t *testing.T) {
	resp := NewResponse()
	resp.Status = StatusNotFound
	resp.Body = "404 NOT FOUND"

	node := ResponseToNode(resp)
	obj, ok := node.(*ast.ObjectNode)
	if !ok {
		t.Fatalf("expected ObjectNode, got %T", node)
	}

	props := obj.Properties()
	if lit := props["status"].(*ast.LiteralNode); lit.Value() != int64(404) {
		t.Errorf("status = %v, want 404", lit.Value())
	}
	if lit := props["reason"].(*ast.LiteralNode); lit.Value() != "404 NOT FOUND" {
		t.Errorf("reason = %v, want 404 NOT FOUND", lit.Value())
	}
}

func TestNodeToValue(t *testing.T) {
	node := ast.NewObjectNode(map[string]ast.SchemaNode{
		"name": ast.NewLiteralNode("amelia", zeroPos),
		"tags": ast.NewArrayDataNode([]ast.SchemaNode{
			ast.NewLiteralNode("a", zeroPos),
			ast.NewLiteralNode("b", zeroPos),
		}, zeroPos),
	}, zeroPos)

	v := NodeToValue(node)
	m, ok := v.(map[string]interface{})
	if !ok {
		t.Fatalf("expected map, got %T", v)
	}
	if m["name"] != "amelia" {
		t.Errorf("name = %v, want amelia", m["name"])
	}
	tags, ok := m["tags"].([]interface{})
	if !ok || len(tags) != 2 || tags[0] != "a" {
		t.Errorf("tags = %v, want [a b]", m["tags"])
	}
}
