package recipe

type Recipe struct {
	ID   int64  `db:"id"`
	Name string `db:"name"`
}

// Flower is a collectible flower type from the catalog. ColorID is the
// label the image identifier resolves photos to.
type Flower struct {
	ID      int64  `db:"id"`
	ColorID string `db:"color_id"`
	Name    string `db:"name"`
}
