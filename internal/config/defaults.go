package config

import "time"

var defaultAPI = API{
	BaseURL:           "https://api-server.krontiva.africa/api:uEBBwbSs",
	TripsBaseURL:      "https://api-server.krontiva.africa/api:D1OPCF46",
	StandardPricingID: "fe8ce25f-7990-431b-ade9-dd0f167157e9",
	Timeout:           15 * time.Second,
}

const defaultTokenPath = ".delika-token"

// DefaultAPI returns the default backend settings.
func DefaultAPI() API {
	return defaultAPI
}

// DefaultTokenPath returns the default auth token file path.
func DefaultTokenPath() string {
	return defaultTokenPath
}
