package message

import (
	"github.com/shapestone/shape-core/pkg/ast"
)

// AST bridge: message values as shape-core nodes, for callers that carry
// structured payloads through the shape toolchain.

var zeroPos = ast.Position{}

// RequestToNode converts a Request to an AST ObjectNode.
func RequestToNode(req *Request) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":    ast.NewLiteralNode("request", zeroPos),
		"method":  ast.NewLiteralNode(string(req.Method), zeroPos),
		"target":  ast.NewLiteralNode(req.URL.String(), zeroPos),
		"headers": headersToNode(req.Headers),
	}
	if req.Body != nil {
		props["body"] = ast.NewLiteralNode(string(req.Body), zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

// ResponseToNode converts a Response to an AST ObjectNode.
func ResponseToNode(resp *Response) ast.SchemaNode {
	props := map[string]ast.SchemaNode{
		"type":    ast.NewLiteralNode("response", zeroPos),
		"status":  ast.NewLiteralNode(int64(resp.Status), zeroPos),
		"reason":  ast.NewLiteralNode(resp.Status.Text(), zeroPos),
		"headers": headersToNode(resp.Headers),
	}
	if resp.Body != "" {
		props["body"] = ast.NewLiteralNode(resp.Body, zeroPos)
	}
	return ast.NewObjectNode(props, zeroPos)
}

func headersToNode(headers Headers) ast.SchemaNode {
	elements := make([]ast.SchemaNode, len(headers))
	for i, h := range headers {
		elements[i] = ast.NewObjectNode(map[string]ast.SchemaNode{
			"key":   ast.NewLiteralNode(h.Key, zeroPos),
			"value": ast.NewLiteralNode(h.Value, zeroPos),
		}, zeroPos)
	}
	return ast.NewArrayDataNode(elements, zeroPos)
}

// NodeToValue converts an AST node to native Go types: literals become
// their values, arrays become []interface{}, objects become maps.
func NodeToValue(node ast.SchemaNode) interface{} {
	switch n := node.(type) {
	case *ast.LiteralNode:
		return n.Value()
	case *ast.ArrayDataNode:
		elements := n.Elements()
		arr := make([]interface{}, len(elements))
		for i, elem := range elements {
			arr[i] = NodeToValue(elem)
		}
		return arr
	case *ast.ObjectNode:
		props := n.Properties()
		m := make(map[string]interface{}, len(props))
		for k, v := range props {
			m[k] = NodeToValue(v)
		}
		return m
	default:
		return nil
	}
}
