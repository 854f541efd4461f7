// Package expr renders AST expressions to their source-like string form,
// memoizing results in an LRU cache. The Go syntax table leans on it for
// operand identifiers of composite expressions, which repeat heavily across
// a file.
package expr

import (
	"fmt"
	"go/ast"
	"strings"
	"sync"

	"github.com/golang/groupcache/lru"
)

// Cache is a thread-safe LRU cache of expression renderings. Lookups take
// the full lock: lru.Cache.Get mutates the recency list, so even reads must
// be serialized.
type Cache struct {
	cache *lru.Cache
	mu    sync.Mutex
}

// NewCache creates a Cache bounded to size entries.
func NewCache(size int) *Cache {
	return &Cache{cache: lru.New(size)}
}

// Render returns the string form of e, computing and caching it on a miss.
func (c *Cache) Render(e ast.Expr) string {
	c.mu.Lock()
	defer c.mu.Unlock()

	if val, ok := c.cache.Get(e); ok {
		return val.(string)
	}

	result := c.render(e)
	c.cache.Add(e, result)
	return result
}

// render computes the string form; nested expressions stay on this
// unexported path so the lock is taken once per top-level call.
func (c *Cache) render(e ast.Expr) string {
	switch x := e.(type) {
	case *ast.Ident:
		return x.Name
	case *ast.BasicLit:
		return x.Value
	case *ast.StarExpr:
		return "*" + c.render(x.X)
	case *ast.SelectorExpr:
		return c.render(x.X) + "." + x.Sel.Name
	case *ast.IndexExpr:
		return c.render(x.X) + "[" + c.render(x.Index) + "]"
	case *ast.ArrayType:
		return "[]" + c.render(x.Elt)
	case *ast.MapType:
		return fmt.Sprintf("map[%s]%s", c.render(x.Key), c.render(x.Value))
	case *ast.ChanType:
		return "chan " + c.render(x.Value)
	case *ast.FuncType:
		params := make([]string, 0, len(x.Params.List))
		for _, p := range x.Params.List {
			params = append(params, c.render(p.Type))
		}
		return "func(" + strings.Join(params, ", ") + ")"
	default:
		return fmt.Sprintf("<%T>", e)
	}
}

// Clear drops every cached rendering.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.cache.Clear()
}
