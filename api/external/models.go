/* models.go
 * Contains the validated input types for the fights API payload. The provider response is
 * not statically guaranteed, so every field the normalizer reads is declared here explicitly
 * and checked rather than trusted
 * Authors: Roman Divkovic
 */

package external

import "encoding/json"

// fightsResponse is the top level payload returned by the fights endpoint
type fightsResponse struct {
	Results  int        `json:"results"`
	Response []RawFight `json:"response"`
}

// RawFighter is one competitor sub-record as the provider ships it. Winner is a
// pointer because the provider sends null until the bout is decided.
type RawFighter struct {
	ID      json.Number `json:"id"`
	Name    string      `json:"name"`
	Record  string      `json:"record"`
	Country string      `json:"country"`
	Winner  *bool       `json:"winner"`
}

// RawFight is a single raw fight record. Fighter sub-records are pointers so a
// missing competitor can be detected and the record rejected.
type RawFight struct {
	ID     json.Number `json:"id"`
	Slug   string      `json:"slug"`
	Date   string      `json:"date"`
	Status struct {
		Short string `json:"short"`
		Long  string `json:"long"`
	} `json:"status"`
	Fighters struct {
		First  *RawFighter `json:"first"`
		Second *RawFighter `json:"second"`
	} `json:"fighters"`
	Method string `json:"method"`
}
