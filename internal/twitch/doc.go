// Package twitch talks to the Twitch identity and Helix APIs: a cached app
// access token source and a fail-soft read client for users, streams,
// channels, and archived broadcasts.
package twitch
