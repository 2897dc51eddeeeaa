package Controllers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"github.com/yeremiapane/restaurant-reservations/controllers"
	"github.com/yeremiapane/restaurant-reservations/middlewares"
	"github.com/yeremiapane/restaurant-reservations/models"
	"github.com/yeremiapane/restaurant-reservations/services"
	"github.com/yeremiapane/restaurant-reservations/validation"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Monday 12 August 2024, noon. The 13th is a Tuesday.
var fixedNow = time.Date(2024, time.August, 12, 12, 0, 0, 0, time.UTC)

func fixedPolicy() validation.Policy {
	p := validation.DefaultPolicy()
	p.Now = func() time.Time { return fixedNow }
	return p
}

// setupTestDB opens a private in-memory SQLite database for one test.
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open("file:"+name+"?mode=memory&cache=shared"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Reservation{}, &models.Table{}))

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })
	return db
}

type eventRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *eventRecorder) Publish(event string, _ interface{}) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *eventRecorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func setupRouter(db *gorm.DB, events *eventRecorder) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middlewares.ErrorHandler())

	reservationSvc := services.NewReservationService(db)
	tableSvc := services.NewTableService(db, reservationSvc)
	reservationCtrl := controllers.NewReservationController(reservationSvc, fixedPolicy(), events)
	tableCtrl := controllers.NewTableController(tableSvc, reservationSvc, events)

	r.GET("/reservations", reservationCtrl.ListReservations)
	r.POST("/reservations", reservationCtrl.CreateReservation)
	r.GET("/reservations/:reservation_id", reservationCtrl.GetReservation)
	r.PUT("/reservations/:reservation_id", reservationCtrl.UpdateReservation)
	r.PUT("/reservations/:reservation_id/status", reservationCtrl.UpdateReservationStatus)

	r.GET("/tables", tableCtrl.GetAllTables)
	r.POST("/tables", tableCtrl.CreateTable)
	r.GET("/tables/:table_id", tableCtrl.GetTable)
	r.PUT("/tables/:table_id/seat", tableCtrl.SeatTable)
	r.DELETE("/tables/:table_id/seat", tableCtrl.FinishTable)
	return r
}

// performRequest sends body (marshalled unless it is a string) and returns
// the recorder.
func performRequest(t *testing.T, r http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	switch b := body.(type) {
	case nil:
		reader = bytes.NewReader(nil)
	case string:
		reader = bytes.NewReader([]byte(b))
	default:
		raw, err := json.Marshal(b)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, path, reader)
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	t.Helper()
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func decodeData(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	var body struct {
		Data json.RawMessage `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	require.NoError(t, json.Unmarshal(body.Data, v))
}

func seedReservation(t *testing.T, db *gorm.DB, r models.Reservation) models.Reservation {
	t.Helper()
	if r.FirstName == "" {
		r.FirstName = "Rick"
	}
	if r.LastName == "" {
		r.LastName = "Sanchez"
	}
	if r.MobileNumber == "" {
		r.MobileNumber = "202-555-0164"
	}
	if r.People == 0 {
		r.People = 2
	}
	if r.ReservationDate == "" {
		r.ReservationDate = "2024-08-14"
	}
	if r.ReservationTime == "" {
		r.ReservationTime = "19:00"
	}
	if r.Status == "" {
		r.Status = models.StatusBooked
	}
	require.NoError(t, db.Create(&r).Error)
	return r
}

func seedTable(t *testing.T, db *gorm.DB, name string, capacity int) models.Table {
	t.Helper()
	tbl := models.Table{TableName: name, Capacity: capacity}
	require.NoError(t, db.Create(&tbl).Error)
	return tbl
}

func reservationPayload(overrides map[string]interface{}) map[string]interface{} {
	data := map[string]interface{}{
		"first_name":       "Rick",
		"last_name":        "Sanchez",
		"mobile_number":    "202-555-0164",
		"people":           2,
		"reservation_date": "2024-08-14",
		"reservation_time": "19:00",
	}
	for k, v := range overrides {
		if v == nil {
			delete(data, k)
			continue
		}
		data[k] = v
	}
	return map[string]interface{}{"data": data}
}

func itoa(id uint) string {
	return strconv.FormatUint(uint64(id), 10)
}
