// Package fuzztests houses Go fuzz harnesses for the front end
// (source -> lexer -> parser -> red tree). Its goal is to guard against
// panics, hangs and broken round-trips on arbitrary bytes.
//
// Назначение: прогонять произвольные байты через лексер и парсер и проверять
// инварианты testkit.
//
// Не делает: генерацию корпусов, запись файлов, выполнение CLI.
package fuzztests
