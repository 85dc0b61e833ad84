package template

import (
	"bytes"
	"encoding/json"
	"errors"
)

// designDocument is the JSON shape exported by the visual editor.
type designDocument struct {
	Blocks []designBlock `json:"blocks"`
}

// designBlock accepts both "kind" and the editor's legacy "componentId" key.
type designBlock struct {
	Order       *int      `json:"order"`
	ID          string    `json:"id"`
	Kind        BlockKind `json:"kind"`
	ComponentID BlockKind `json:"componentId"`
	Content     string    `json:"content"`
}

// FromDesign decodes an editor design into blocks.
// Blocks without an explicit order keep their position in the document.
func FromDesign(raw []byte) ([]Block, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil, ErrInvalidDesign
	}

	var doc designDocument
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, errors.Join(ErrInvalidDesign, err)
	}

	blocks := make([]Block, 0, len(doc.Blocks))
	for i, db := range doc.Blocks {
		kind := db.Kind
		if kind == "" {
			kind = db.ComponentID
		}
		order := i
		if db.Order != nil {
			order = *db.Order
		}
		blocks = append(blocks, Block{
			ID:      db.ID,
			Kind:    kind,
			Content: db.Content,
			Order:   order,
		})
	}

	return blocks, nil
}
