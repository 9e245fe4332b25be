// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines domain, request, and response types shared by both apps.

# Domain Types

  - Question: one row of the question worksheet (id, prompt, type, up to five
    options, unused correct answer, active flag)
  - Response: one row of the response worksheet (timestamp, student id, name or
    nickname, question id, answer, session id)
  - Identity: how a participant identifies (student id + name, or nickname)

# Question Types

Worksheet cells use the classroom's language:

	TypeMultipleChoice = "객관식"
	TypeFreeText       = "단답형"

ParseQuestionType also accepts "multiple-choice" and "free-text".

# Banners

Failures that should not interrupt the UI are returned as a Banner inside a
200 response rather than as an HTTP error:

	models.Warning("question sheet is not initialized")

# Session States

	StateUnidentified → StateWaiting → StateAnswering → StateAnswered → StateWaiting
*/
package models
