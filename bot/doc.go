// Package bot is the Discord front end. It registers the slash commands
// (kuma-say, kuma-get-last, kuma-answer), routes interactions, and presents
// generated reply candidates as selectable buttons.
package bot
