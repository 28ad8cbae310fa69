package erp

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDecodeList(t *testing.T) {
	logger := zap.NewNop()

	t.Run("status envelope with data array", func(t *testing.T) {
		payload := []byte(`{"status":"1","data":[{"ErpCode":"a","Name":"x"},{"ErpCode":"b","Name":"y"}]}`)
		got := DecodeList[Customer](payload, logger)
		require.Len(t, got, 2)
		assert.Equal(t, "a", got[0].ErpCode)
	})

	t.Run("bare array", func(t *testing.T) {
		payload := []byte(`[{"ErpCode":"a"},{"ErpCode":"b"}]`)
		got := DecodeList[Customer](payload, logger)
		assert.Len(t, got, 2)
	})

	t.Run("entity-named wrapper", func(t *testing.T) {
		payload := []byte(`{"Customer":[{"ErpCode":"a"}]}`)
		got := DecodeList[Customer](payload, logger)
		require.Len(t, got, 1)
		assert.Equal(t, "a", got[0].ErpCode)
	})

	t.Run("wrapper nested under data", func(t *testing.T) {
		payload := []byte(`{"data":{"Customer":[{"ErpCode":"a"},{"ErpCode":"b"}]}}`)
		got := DecodeList[Customer](payload, logger)
		assert.Len(t, got, 2)
	})

	t.Run("data array without status", func(t *testing.T) {
		payload := []byte(`{"data":[{"ErpCode":"a"}]}`)
		got := DecodeList[Customer](payload, logger)
		assert.Len(t, got, 1)
	})

	t.Run("single record with ErpCode", func(t *testing.T) {
		payload := []byte(`{"ErpCode":"only","Name":"solo"}`)
		got := DecodeList[Customer](payload, logger)
		require.Len(t, got, 1)
		assert.Equal(t, "only", got[0].ErpCode)
	})

	t.Run("unknown shape yields empty list", func(t *testing.T) {
		payload := []byte(`{"whatever":42}`)
		got := DecodeList[Customer](payload, logger)
		assert.NotNil(t, got)
		assert.Empty(t, got)
	})

	t.Run("garbage yields empty list", func(t *testing.T) {
		assert.Empty(t, DecodeList[Customer]([]byte(`<html>proxy error</html>`), logger))
		assert.Empty(t, DecodeList[Customer](nil, logger))
	})

	t.Run("entity wrapper outranks a data key", func(t *testing.T) {
		payload := []byte(`{"Customer":[{"ErpCode":"wrapped"}],"data":[{"ErpCode":"ignored"}]}`)
		got := DecodeList[Customer](payload, logger)
		require.Len(t, got, 1)
		assert.Equal(t, "wrapped", got[0].ErpCode)
	})

	t.Run("product wrapper", func(t *testing.T) {
		payload := []byte(`{"product":[{"ErpCode":"p1","SellPrice":"1000"}]}`)
		got := DecodeList[Product](payload, logger)
		require.Len(t, got, 1)
		assert.Equal(t, "p1", got[0].ErpCode)
	})
}

func TestDedupeByErpCode(t *testing.T) {
	key := func(c Customer) string { return c.ErpCode }

	t.Run("first occurrence wins", func(t *testing.T) {
		items := []Customer{
			{ErpCode: "a", Name: "first"},
			{ErpCode: "b"},
			{ErpCode: "a", Name: "second"},
		}
		unique, dups := DedupeByErpCode(items, key)
		require.Len(t, unique, 2)
		assert.Equal(t, "first", unique[0].Name)
		assert.Equal(t, []string{"a"}, dups)
	})

	t.Run("records without code pass through", func(t *testing.T) {
		items := []Customer{{Name: "n1"}, {Name: "n2"}}
		unique, dups := DedupeByErpCode(items, key)
		assert.Len(t, unique, 2)
		assert.Empty(t, dups)
	})

	t.Run("empty input", func(t *testing.T) {
		unique, dups := DedupeByErpCode(nil, key)
		assert.Empty(t, unique)
		assert.Empty(t, dups)
	})
}
