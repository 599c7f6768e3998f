// Package urlbuilder assembles final request URLs from a base URL, a path
// template and serialized path and query parameters.
//
// # Quick Start
//
//	u, err := urlbuilder.Build("/pets/{id}", urlbuilder.Options{
//		BaseURL: "https://api.example.com",
//		Params: &urlbuilder.RequestParams{
//			Path:  serializer.NewParams("id", 42),
//			Query: serializer.NewParams("tags", []string{"a", "b"}),
//		},
//	})
//	// u == "https://api.example.com/pets/42?tags=a&tags=b"
//
// Base URL and pathname are concatenated as-is. Use [RemoveTrailingSlash] on
// the base URL first when it may end in "/".
package urlbuilder
