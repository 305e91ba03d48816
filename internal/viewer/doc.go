// Package viewer turns a material identifier into a Page: the structure
// fetched from a provider, its derived properties and the 3D and 2D scenes.
//
// A failed fetch is the one handled error. It is returned as a *FetchError
// and no scene is built for that evaluation.
package viewer
