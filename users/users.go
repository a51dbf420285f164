// Package users resolves uids to login names.
package users

import (
	"os/user"
	"strconv"

	lru "github.com/hashicorp/golang-lru"
)

// LookupFunc returns the login name of uid
type LookupFunc func(uid int) (string, error)

// SystemLookup asks the user database through os/user.
func SystemLookup(uid int) (string, error) {
	u, err := user.LookupId(strconv.Itoa(uid))
	if err != nil {
		return "", err
	}
	return u.Username, nil
}

// Cache remembers resolved names. Most processes on a machine belong to a
// handful of users, so a small cache avoids most passwd lookups.
type Cache struct {
	names   *lru.Cache
	lookup  LookupFunc
	numeric bool
}

const cacheSize = 256

// MaxNameLen is the longest login name shown whole. Longer names are cut
// to MaxNameLen-1 bytes followed by "+".
const MaxNameLen = 8

// New returns a cache using lookup. With numeric set, uids are never resolved.
func New(lookup LookupFunc, numeric bool) (*Cache, error) {
	names, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Cache{names: names, lookup: lookup, numeric: numeric}, nil
}

// Name returns the login name of uid, shortened to MaxNameLen, or the uid
// itself in full when it has none. Unknown uids render as "?".
func (c *Cache) Name(uid int) string {
	if uid < 0 {
		return "?"
	}
	if c.numeric {
		return strconv.Itoa(uid)
	}

	if name, ok := c.names.Get(uid); ok {
		return name.(string)
	}

	name, err := c.lookup(uid)
	if err != nil || name == "" {
		name = strconv.Itoa(uid)
	} else if len(name) > MaxNameLen {
		name = name[:MaxNameLen-1] + "+"
	}
	c.names.Add(uid, name)

	return name
}
