// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store maps the question and response worksheets to typed records.

# Worksheets

	질문 (questions): 질문ID, 질문, 유형, 선택지1..선택지5, 정답, 활성화
	응답 (responses): 시간, 학번, 이름, 질문ID, 응답, 세션ID

The header row is checked on every load. A reordered or renamed column fails
with a *HeaderError (errors.Is(err, ErrHeaderMismatch)) naming the column. An
empty worksheet fails with ErrNotInitialized; Seed writes fresh headers.

# Activation

	n, err := st.Activate(ctx, "Q2")

Activate clears every active flag, then sets the requested one. The phases
are separate cell writes with no compare-and-swap, so concurrent admins can
leave zero or two active rows. An unknown id returns ErrQuestionNotFound
after the clear phase has run.

# Responses

Responses are append-only:

	err := st.AppendResponse(ctx, models.Response{QuestionID: "Q1", Answer: "Python"})

Responses(ctx, id) reads the whole worksheet and filters in memory.
*/
package store
