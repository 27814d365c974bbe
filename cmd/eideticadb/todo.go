package main

// Todo is the record type stored in the "todos" RowStore subtree.
type Todo struct {
	Title     string `json:"title"`
	Completed bool   `json:"completed"`
}

const todosSubtree = "todos"
