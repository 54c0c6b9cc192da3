package services

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/storefront/backend/domain/customer"
)

var (
	csvServiceInstance *CSVService
	once               sync.Once
)

type CSVService struct{}

func NewCSVService() *CSVService {
	once.Do(func() {
		csvServiceInstance = &CSVService{}
	})
	return csvServiceInstance
}

func (c *CSVService) CsvToEntities(r io.Reader,
	entityMapper func(record []string) interface{}) ([]interface{}, error) {
	csvReader := csv.NewReader(r)
	csvReader.FieldsPerRecord = -1
	csvReader.TrimLeadingSpace = true

	// Skip header
	_, err := csvReader.Read()
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read CSV header: %w", ErrInvalidCSV, err)
	}

	var entityList []interface{}
	for {
		record, err := csvReader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: failed to read CSV record: %w", ErrInvalidCSV, err)
		}

		entityList = append(entityList, entityMapper(record))
	}

	return entityList, nil
}

type customerRow struct {
	id      string
	name    string
	address *customer.Address
	err     error
}

// customerRowMapper reads id,name[,street,number,zip,city]. The address is
// optional but must be complete when present.
func customerRowMapper(record []string) interface{} {
	for i := range record {
		record[i] = strings.TrimSpace(record[i])
	}

	switch len(record) {
	case 2:
		return customerRow{id: record[0], name: record[1]}
	case 6:
		number, err := strconv.Atoi(record[3])
		if err != nil {
			return customerRow{err: fmt.Errorf("%w: number %q", customer.ErrInvalidAddress, record[3])}
		}

		return customerRow{
			id:   record[0],
			name: record[1],
			address: &customer.Address{
				Street: record[2],
				Number: number,
				Zip:    record[4],
				City:   record[5],
			},
		}
	}

	return customerRow{err: fmt.Errorf("%w: expected 2 or 6 columns, got %d", customer.ErrInvalidCustomer, len(record))}
}
