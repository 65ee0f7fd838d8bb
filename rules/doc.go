// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package rules loads the competition rules, categories and jury from YAML.

	title: FiesTA Awwards
	sections:
	  - heading: Voting
	    items:
	      - Each signed-in user can vote once per nomination.
	categories:
	  - name: Best TA
	    questions: ["What did they do for you?"]
	jury:
	  - name: Prof. Oak
	    email: oak@example.edu

A missing file yields Default. Empty sections and categories fall back to
the defaults; there is no default jury. Juror emails are compared
case-insensitively.

# Reloading

Watcher reloads the file into a Store on every change, debounced. Readers
call Store.Get and always see a complete Rules value.
*/
package rules
