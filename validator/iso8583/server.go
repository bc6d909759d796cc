package iso8583

import (
	"encoding/binary"
	"fmt"
	"io"
	"strings"

	"github.com/alovak/cardcheck/internal/pan"
	"github.com/alovak/cardcheck/validator/models"
	"github.com/moov-io/iso8583"
	connection "github.com/moov-io/iso8583-connection"
	"github.com/moov-io/iso8583-connection/server"
	"golang.org/x/exp/slog"
)

// Validator is the part of the validation pipeline the server needs.
type Validator interface {
	Validate(raw, cardType string) models.Result
}

// Observer receives every result, e.g. for metrics.
type Observer interface {
	Observe(source string, result models.Result)
}

// Server answers 0100 verification requests with 0110 responses whose
// response code reflects the format validation of the PAN in field 2.
type Server struct {
	Addr string

	logger    *slog.Logger
	validator Validator
	observer  Observer
	server    *server.Server
}

func NewServer(logger *slog.Logger, addr string, validator Validator, observer Observer) *Server {
	return &Server{
		Addr:      addr,
		logger:    logger.With(slog.String("component", "iso8583")),
		validator: validator,
		observer:  observer,
	}
}

func (s *Server) Start() error {
	srv := server.New(Spec, ReadMessageLength, WriteMessageLength,
		connection.InboundMessageHandler(s.handleMessage),
		connection.ErrorHandler(func(err error) {
			s.logger.Error("iso8583 connection error", slog.Any("err", err))
		}),
	)

	err := srv.Start(s.Addr)
	if err != nil {
		return fmt.Errorf("starting iso8583 server: %w", err)
	}

	s.Addr = srv.Addr
	s.server = srv
	s.logger.Info("iso8583 server started", slog.String("addr", s.Addr))

	return nil
}

func (s *Server) Close() error {
	if s.server == nil {
		return nil
	}
	s.server.Close()
	return nil
}

func (s *Server) handleMessage(c *connection.Connection, message *iso8583.Message) {
	response, result, err := Respond(s.validator, message)
	if err != nil {
		s.logger.Error("building response", slog.Any("err", err))
		response = formatErrorResponse(message)
	}
	if s.observer != nil && result.Status != "" {
		s.observer.Observe("iso8583", result)
	}

	number, _ := message.GetString(fieldPAN)
	code, _ := response.GetString(fieldResponseCode)
	s.logger.Info("verification request handled",
		slog.String("masked", pan.Mask(number)),
		slog.String("response_code", code),
		slog.String("reason", string(result.Reason)),
	)

	if err := c.Reply(response); err != nil {
		s.logger.Error("replying to message", slog.Any("err", err))
	}
}

// Respond builds the 0110 response for a verification request. The returned
// result is zero when the request never reached the validation pipeline.
func Respond(v Validator, request *iso8583.Message) (*iso8583.Message, models.Result, error) {
	response := iso8583.NewMessage(Spec)
	response.MTI(mtiVerificationResponse)

	stan, _ := request.GetString(fieldSTAN)
	if stan != "" {
		if err := response.Field(fieldSTAN, stan); err != nil {
			return nil, models.Result{}, fmt.Errorf("setting stan: %w", err)
		}
	}

	mti, err := request.GetMTI()
	if err != nil || mti != mtiVerificationRequest {
		return response, models.Result{}, setResponse(response, ResponseFormatError, "unsupported mti")
	}

	number, err := request.GetString(fieldPAN)
	if err != nil || number == "" {
		return response, models.Result{}, setResponse(response, ResponseFormatError, string(models.ReasonFormat))
	}

	result := v.Validate(number, "")
	if result.Valid() {
		return response, result, setResponse(response, ResponseApproved, joinTypes(result.CandidateTypes, maxAdditionalData))
	}
	return response, result, setResponse(response, ResponseInvalidCardNumber, string(result.Reason))
}

func setResponse(message *iso8583.Message, code, data string) error {
	if err := message.Field(fieldResponseCode, code); err != nil {
		return fmt.Errorf("setting response code: %w", err)
	}
	if data == "" {
		return nil
	}
	if err := message.Field(fieldAdditionalData, data); err != nil {
		return fmt.Errorf("setting additional data: %w", err)
	}
	return nil
}

// formatErrorResponse is the fallback reply when Respond fails, so the peer
// is never left waiting for a response that will not come.
func formatErrorResponse(request *iso8583.Message) *iso8583.Message {
	response := iso8583.NewMessage(Spec)
	response.MTI(mtiVerificationResponse)
	if stan, _ := request.GetString(fieldSTAN); stan != "" {
		_ = response.Field(fieldSTAN, stan)
	}
	_ = response.Field(fieldResponseCode, ResponseFormatError)
	return response
}

// joinTypes pipe-joins as many whole type ids as fit into limit characters.
// A single id longer than limit is cut.
func joinTypes(ids []string, limit int) string {
	var b strings.Builder
	for _, id := range ids {
		sep := 0
		if b.Len() > 0 {
			sep = 1
		}
		if b.Len()+sep+len(id) > limit {
			break
		}
		if sep == 1 {
			b.WriteByte('|')
		}
		b.WriteString(id)
	}
	if b.Len() == 0 && len(ids) > 0 {
		id := ids[0]
		if len(id) > limit {
			id = id[:limit]
		}
		return id
	}
	return b.String()
}

// ReadMessageLength reads the 2 byte big endian header framing every message.
func ReadMessageLength(r io.Reader) (int, error) {
	header := make([]byte, 2)
	_, err := io.ReadFull(r, header)
	if err != nil {
		return 0, err
	}
	return int(binary.BigEndian.Uint16(header)), nil
}

// WriteMessageLength writes the header read by ReadMessageLength.
func WriteMessageLength(w io.Writer, length int) (int, error) {
	header := make([]byte, 2)
	binary.BigEndian.PutUint16(header, uint16(length))
	return w.Write(header)
}
