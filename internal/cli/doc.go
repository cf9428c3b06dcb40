// Copyright (c) 2026 Davidcm2803 and the bot-literario contributors
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package cli provides the biblio command tree.
//
// Commands:
//
//	biblio              Start the terminal interface (line mode when stdin is not a terminal)
//	biblio ask <q...>   Ask one question and print the answer
//	biblio chat         Interactive line-mode chat with input history
//	biblio status       Check whether the backend is reachable
//	biblio theme [t]    Show or change the saved theme (light, dark, toggle)
//	biblio suggest      Print a set of suggested questions
//	biblio config ...   Show, locate or initialize the config file
//	biblio version      Print version information
//
// Global flags:
//
//	--config PATH       Config file (TOML, or YAML by extension)
//	--backend URL       Backend base URL
//	--log-level LEVEL   debug, info, warn or error
package cli
