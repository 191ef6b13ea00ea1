package handlers

// HandlerBundle groups the endpoint handlers the router needs.
type HandlerBundle struct {
	Chat      *ChatHandler
	Favorites *FavoritesHandler
	Profile   *ProfileHandler
}
