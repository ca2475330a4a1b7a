// Package shoutout implements the category resolution pipeline and message
// composition that turn a Twitch username into a shoutout sentence.
package shoutout
