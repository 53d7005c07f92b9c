package inventory

import (
	"bufio"
	"encoding/csv"
	"strings"

	"rcpanel/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

const (
	minFields     = 3
	maxLineLength = 1024 * 1024
)

// FileSource читает выгрузку из AD: CSV в UTF-16 с заголовком в первой строке
type FileSource struct {
	fs   afero.Fs
	path string
	log  logrus.FieldLogger
}

func NewFileSource(fs afero.Fs, path string, log logrus.FieldLogger) *FileSource {
	return &FileSource{fs: fs, path: path, log: log}
}

func (s *FileSource) source() {}

// ListComputers - записи в порядке строк файла, строки короче 3 полей пропускаются
func (s *FileSource) ListComputers() []models.Computer {
	computers := []models.Computer{}

	if strings.TrimSpace(s.path) == "" {
		s.log.Warn("inventory: csv path is not configured")
		return computers
	}

	info, err := s.fs.Stat(s.path)
	if err != nil || !info.Mode().IsRegular() {
		s.log.WithField("path", s.path).Warn("inventory: csv file not found")
		return computers
	}

	file, err := s.fs.Open(s.path)
	if err != nil {
		s.log.WithError(err).WithField("path", s.path).Warn("inventory: failed to open csv file")
		return computers
	}
	defer file.Close()

	// Выгрузка пишется в UTF-16 с BOM; без BOM считаем little-endian
	decoder := unicode.UTF16(unicode.LittleEndian, unicode.UseBOM).NewDecoder()
	scanner := bufio.NewScanner(transform.NewReader(file, decoder))
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineLength)

	// Каждая строка разбирается отдельно, кавычки не переходят на следующую
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		// Первая строка - заголовок, содержимое не важно
		if lineNo == 1 {
			continue
		}

		fields := s.splitLine(scanner.Text(), lineNo)
		if fields == nil {
			continue
		}

		computers = append(computers, models.Computer{
			Name: strings.TrimSpace(fields[0]),
			Type: strings.TrimSpace(fields[1]),
			FIO:  strings.TrimSpace(fields[2]),
		})
	}
	if err := scanner.Err(); err != nil {
		s.log.WithError(err).WithField("path", s.path).Warn("inventory: failed to read csv file")
		return []models.Computer{}
	}

	return computers
}

// splitLine делит строку по запятым. Строка подходит, если в ней
// не меньше 3 полей; значения в кавычках ("a","b","c") разворачиваются,
// когда строка корректна как CSV.
func (s *FileSource) splitLine(line string, lineNo int) []string {
	fields := strings.Split(line, ",")
	if len(fields) < minFields {
		return nil
	}
	if !strings.Contains(line, `"`) {
		return fields
	}

	reader := csv.NewReader(strings.NewReader(line))
	reader.FieldsPerRecord = -1
	record, err := reader.Read()
	if err != nil {
		s.log.WithError(err).WithFields(logrus.Fields{
			"path": s.path,
			"line": lineNo,
		}).Warn("inventory: malformed quotes, using raw fields")
		return fields
	}
	if len(record) < minFields {
		return fields
	}
	return record
}
