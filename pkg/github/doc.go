// Package github inspects and standardizes pull-request merge settings across
// GitHub repositories.
//
// The package includes:
// - APIClient interface and its go-github backed Client
// - Target resolution and the repository Catalog
// - RepositorySettings snapshots and DesiredConfiguration
// - Reconciler for planning and applying merge setting changes in bulk
package github
