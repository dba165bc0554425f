package table

import (
	"github.com/pkg/errors"

	"minidb/pager"
)

// Database ties a pager to the B+-tree stored in it, taking care of the
// one-time setup a brand-new file needs.
type Database struct {
	Pager *pager.Pager
	Tree  *BTree
}

// Open opens the database file at path, initializing page 0 as an
// empty, root leaf node if the file was just created.
func Open(path string) (*Database, error) {
	p, err := pager.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "table: open")
	}

	if p.NumPages() == 0 {
		root, err := p.GetPage(rootPageNum)
		if err != nil {
			return nil, errors.Wrap(err, "table: initialize root")
		}
		InitializeLeafNode(root)
		SetIsRoot(root, true)
	}

	return &Database{
		Pager: p,
		Tree:  NewBTree(p),
	}, nil
}

// Close flushes all resident pages and closes the backing file.
func (d *Database) Close() error {
	return d.Pager.Close()
}
