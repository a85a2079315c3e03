package syntax

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFprint(t *testing.T) {
	stmts := parse(t, "let x = 1;\nwhile (x < 3) x = x + 1;")

	var buf bytes.Buffer
	require.NoError(t, Fprint(&buf, stmts))
	assert.Equal(t, "(var x = 1)\n(while (< x 3) (= x (+ x 1));)\n", buf.String())
}

func TestStringLambda(t *testing.T) {
	l := &Lambda{
		Params: []Param{{Name: "a", Type: "int"}, {Name: "b"}},
		Body:   &Binary{Left: &Identifier{Name: "a"}, Op: "+", Right: &Identifier{Name: "b"}},
	}
	assert.Equal(t, "(lambda (a: int b) (+ a b))", String(l))
}

func TestStringPrintStmt(t *testing.T) {
	s := &PrintStmt{X: &Literal{Value: "hi", Type: StringLit}}
	assert.Equal(t, "(print hi)", String(s))
}

func TestFprintJSON(t *testing.T) {
	stmts := parse(t, "fn f(a: int) { return a; }\nfor (;;) {}")

	var buf bytes.Buffer
	require.NoError(t, FprintJSON(&buf, stmts))

	var got []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	require.Len(t, got, 2)

	assert.Equal(t, "FuncStmt", got[0]["type"])
	assert.Equal(t, "f", got[0]["name"])
	assert.Equal(t, "1:1", got[0]["pos"])
	params := got[0]["params"].([]interface{})
	require.Len(t, params, 1)
	assert.Equal(t, map[string]interface{}{"name": "a", "vartype": "int"}, params[0])

	body := got[0]["body"].(map[string]interface{})
	assert.Equal(t, "BlockStmt", body["type"])
	ret := body["stmts"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "ReturnStmt", ret["type"])

	assert.Equal(t, "ForStmt", got[1]["type"])
	assert.Nil(t, got[1]["init"])
	assert.Nil(t, got[1]["cond"])
	assert.Equal(t, "2:1", got[1]["pos"])
}
