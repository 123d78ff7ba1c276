package test_test

import (
	"bytes"
	"context"
	"errors"
	"strings"

	"github.com/golang/mock/gomock"
	"github.com/loopcontext/spajsonpo"
	mock_spajsonpo "github.com/loopcontext/spajsonpo/test/mock"
	. "github.com/onsi/ginkgo"
	. "github.com/onsi/gomega"
)

const settingsConf = `{
  "wireplumber.settings.schema": {
    "device.restore-profile": {
      "name": "Restore profile",
      "description": "Remember and restore device profiles",
      "type": "bool",
      "default": true
    },
    "device.restore-routes": {
      "name": "Restore routes",
      "description": "Remember and restore device routes",
      "type": "bool",
      "default": true,
      "choices": ["Restore routes", "Never"]
    }
  },
  "wireplumber.components": [
    {"name": "libwireplumber-module-settings", "type": "module"}
  ]
}`

const alsaConf = `{
  "monitor.alsa.properties": {
    "alsa.use-acp": true
  },
  "wireplumber.settings.schema": {
    "monitor.alsa.reserve": {
      "name": "Reserve devices",
      "description": "Remember and restore device routes"
    }
  }
}`

var _ = Describe("Extractor", func() {
	var (
		ctrl      *gomock.Controller
		converter *mock_spajsonpo.MockConverter
		ctx       context.Context
		patterns  []*spajsonpo.KeyPattern
	)

	BeforeEach(func() {
		ctrl = gomock.NewController(GinkgoT())
		converter = mock_spajsonpo.NewMockConverter(ctrl)
		ctx = context.Background()

		var err error
		patterns, err = spajsonpo.CompilePatterns([]string{
			`^/wireplumber\.settings\.schema/[^/]*/name$`,
			`^/wireplumber\.settings\.schema/[^/]*/description$`,
		})
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		ctrl.Finish()
	})

	render := func(c *spajsonpo.Catalog) string {
		var buf bytes.Buffer
		Expect(spajsonpo.WriteTemplate(&buf, c)).To(Succeed())
		return buf.String()
	}

	It("should call the converter once per file in order", func() {
		gomock.InOrder(
			converter.EXPECT().Convert(gomock.Any(), "/etc/wireplumber/settings.conf").Return([]byte(settingsConf), nil),
			converter.EXPECT().Convert(gomock.Any(), "/etc/wireplumber/alsa.conf").Return([]byte(alsaConf), nil),
		)
		ext := spajsonpo.NewExtractor(converter, patterns, nil)
		_, err := ext.Extract(ctx, []string{"/etc/wireplumber/settings.conf", "/etc/wireplumber/alsa.conf"})
		Expect(err).NotTo(HaveOccurred())
	})

	It("should only extract strings under matching key paths", func() {
		converter.EXPECT().Convert(gomock.Any(), "settings.conf").Return([]byte(settingsConf), nil)
		ext := spajsonpo.NewExtractor(converter, patterns, nil)
		c, err := ext.Extract(ctx, []string{"settings.conf"})
		Expect(err).NotTo(HaveOccurred())

		Expect(c.Len()).To(Equal(4))
		Expect(c.Occurrences("bool")).To(BeEmpty())
		Expect(c.Occurrences("Never")).To(BeEmpty())
		Expect(c.Occurrences("libwireplumber-module-settings")).To(BeEmpty())
		Expect(c.Occurrences("Restore routes")).To(ConsistOf(spajsonpo.Occurrence{
			File: "settings.conf",
			Path: "/wireplumber.settings.schema/device.restore-routes/name",
		}))
	})

	It("should merge a string shared by two files into one entry", func() {
		converter.EXPECT().Convert(gomock.Any(), "a/settings.conf").Return([]byte(settingsConf), nil)
		converter.EXPECT().Convert(gomock.Any(), "b/alsa.conf").Return([]byte(alsaConf), nil)
		ext := spajsonpo.NewExtractor(converter, patterns, nil)
		c, err := ext.Extract(ctx, []string{"a/settings.conf", "b/alsa.conf"})
		Expect(err).NotTo(HaveOccurred())

		out := render(c)
		Expect(strings.Count(out, `msgid "Remember and restore device routes"`)).To(Equal(1))
		Expect(out).To(ContainSubstring(
			"#. /wireplumber.settings.schema/monitor.alsa.reserve/description\n#: alsa.conf\n" +
				"#. /wireplumber.settings.schema/device.restore-routes/description\n#: settings.conf\n" +
				"msgid \"Remember and restore device routes\"\nmsgstr \"\"\n"))
	})

	It("should order entries by their sorted occurrences", func() {
		converter.EXPECT().Convert(gomock.Any(), "settings.conf").Return([]byte(settingsConf), nil)
		converter.EXPECT().Convert(gomock.Any(), "alsa.conf").Return([]byte(alsaConf), nil)
		ext := spajsonpo.NewExtractor(converter, patterns, nil)
		c, err := ext.Extract(ctx, []string{"settings.conf", "alsa.conf"})
		Expect(err).NotTo(HaveOccurred())

		var ids []string
		for _, e := range c.Entries() {
			ids = append(ids, e.MsgID)
		}
		Expect(ids).To(Equal([]string{
			"Remember and restore device routes",
			"Reserve devices",
			"Remember and restore device profiles",
			"Restore profile",
			"Restore routes",
		}))
	})

	It("should emit only the header without patterns", func() {
		converter.EXPECT().Convert(gomock.Any(), "settings.conf").Return([]byte(settingsConf), nil)
		ext := spajsonpo.NewExtractor(converter, nil, nil)
		c, err := ext.Extract(ctx, []string{"settings.conf"})
		Expect(err).NotTo(HaveOccurred())
		Expect(render(c)).To(HaveSuffix("\"Content-Transfer-Encoding: 8bit\\n\"\n\n"))
		Expect(c.Len()).To(BeZero())
	})

	It("should stop at the first failing conversion", func() {
		failure := &spajsonpo.ConversionError{File: "broken.conf", Converter: "spa-json-dump", ExitCode: 1, Err: errors.New("exit status 1")}
		converter.EXPECT().Convert(gomock.Any(), "broken.conf").Return(nil, failure)
		ext := spajsonpo.NewExtractor(converter, patterns, nil)
		c, err := ext.Extract(ctx, []string{"broken.conf", "never-converted.conf"})
		Expect(c).To(BeNil())
		var cerr *spajsonpo.ConversionError
		Expect(errors.As(err, &cerr)).To(BeTrue())
		Expect(cerr.ExitCode).To(Equal(1))
	})

	It("should fail on malformed converter output", func() {
		converter.EXPECT().Convert(gomock.Any(), "bad.conf").Return([]byte(`{"wireplumber.settings.schema": `), nil)
		ext := spajsonpo.NewExtractor(converter, patterns, nil)
		_, err := ext.Extract(ctx, []string{"bad.conf"})
		var perr *spajsonpo.ParseError
		Expect(errors.As(err, &perr)).To(BeTrue())
		Expect(perr.File).To(Equal("bad.conf"))
	})

	It("should produce identical output on repeated runs", func() {
		converter.EXPECT().Convert(gomock.Any(), gomock.Any()).Return([]byte(settingsConf), nil).Times(2)
		ext := spajsonpo.NewExtractor(converter, patterns, nil)
		first, err := ext.Extract(ctx, []string{"settings.conf"})
		Expect(err).NotTo(HaveOccurred())
		second, err := ext.Extract(ctx, []string{"settings.conf"})
		Expect(err).NotTo(HaveOccurred())
		Expect(render(first)).To(Equal(render(second)))
	})
})
