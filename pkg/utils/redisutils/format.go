package redisutils

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vertex-lab/ssppr/pkg/models"
)

// FormatID() formats a nodeID (uint32) into a string
func FormatID(ID uint32) string {
	return strconv.FormatUint(uint64(ID), 10)
}

// ParseID() parses a nodeID (uint32) from the specified string
func ParseID(strVal string) (uint32, error) {
	parsedVal, err := strconv.ParseUint(strVal, 10, 32)
	return uint32(parsedVal), err
}

// FormatIDs() formats a slice of nodeIDs into a slice of interfaces, ready to be
// passed to variadic Redis commands like RPUSH.
func FormatIDs(IDs []uint32) []interface{} {
	strIDs := make([]interface{}, len(IDs))
	for i, ID := range IDs {
		strIDs[i] = FormatID(ID)
	}
	return strIDs
}

// ParseIDs() parses a slice of strings into a slice of nodeIDs.
func ParseIDs(strIDs []string) ([]uint32, error) {
	IDs := make([]uint32, len(strIDs))
	for i, strID := range strIDs {
		ID, err := ParseID(strID)
		if err != nil {
			return nil, fmt.Errorf("failed to parse nodeID %q: %w", strID, err)
		}
		IDs[i] = ID
	}
	return IDs, nil
}

// FormatFloat64() formats a float64 with the minimal number of digits that parse back to the same value.
func FormatFloat64(val float64) string {
	return strconv.FormatFloat(val, 'g', -1, 64)
}

// ParseFloat64() parses a float64 from the specified string
func ParseFloat64(strVal string) (float64, error) {
	parsedVal, err := strconv.ParseFloat(strVal, 64)
	return parsedVal, err
}

// FormatVector() formats a vector into a comma separated string ready to be stored in Redis.
// Parsing it back with ParseVector() returns the same values.
func FormatVector(vector models.Vector) string {
	strVals := make([]string, len(vector))
	for i, val := range vector {
		strVals[i] = FormatFloat64(val)
	}

	return strings.Join(strVals, ",")
}

// ParseVector() parses a comma separated string into a vector.
func ParseVector(strVector string) (models.Vector, error) {
	if len(strVector) == 0 {
		return models.Vector{}, nil
	}

	strVals := strings.Split(strVector, ",")
	vector := make(models.Vector, len(strVals))

	for i, str := range strVals {
		val, err := ParseFloat64(str)
		if err != nil {
			return nil, fmt.Errorf("failed to parse value %d of the vector: %w", i, err)
		}
		vector[i] = val
	}

	return vector, nil
}
