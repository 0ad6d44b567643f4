// Package people_tools exposes contact operations as model-callable tools:
// the append-only local contact list and search over the Google People API.
package people_tools
