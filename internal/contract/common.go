package contract

import "github.com/alexanderramin/cycleboard/internal/app"

type ExtractCounts = app.ExtractCounts

type FilterOverride = app.FilterOverride

type ImportResult = app.ImportResult

type SessionView = app.SessionView
