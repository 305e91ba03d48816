// Package web serves the viewer over HTTP: an HTML page with inline SVG
// plots and a JSON API returning properties and scenes.
package web
