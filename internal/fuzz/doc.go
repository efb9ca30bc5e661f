// Package fuzztests houses Go fuzz harnesses for the Kind front end
// (source -> lexer -> parser). They guard against panics, hangs and broken
// span invariants on arbitrary input.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
