package catalog

func inline(name string, kind Kind, t VariableType, c Classification) Prototype {
	return Prototype{Name: name, Kind: kind, Params: []ParamSpec{Param(t, c)}}
}

func scalar(name string, t VariableType, c Classification) Prototype {
	return inline(name, KindScalar, t, c)
}

func builtin() []Prototype {
	protos := []Prototype{
		inline("i", KindToggle, Bool, Normal),
		inline("u", KindToggle, Bool, Normal),
		inline("s", KindToggle, Bool, Normal),

		scalar("b", Int, Normal),
		scalar("a", Int, Normal),
		scalar("an", Int, Normal),
		scalar("q", Int, Normal),
		scalar("p", Int, Normal),
		scalar("pbo", Int, AbsolutePosY),
		scalar("kt", Int, Normal),

		scalar("bord", Float, AbsoluteSize),
		scalar("xbord", Float, AbsoluteSize),
		scalar("ybord", Float, AbsoluteSize),
		scalar("shad", Float, AbsoluteSize),
		scalar("xshad", Float, AbsoluteSize),
		scalar("yshad", Float, AbsoluteSize),
		scalar("be", Float, AbsoluteSize),
		scalar("blur", Float, AbsoluteSize),
		scalar("fsp", Float, AbsoluteSize),
		scalar("fsc", Float, RelativeSizeX),
		scalar("fscx", Float, RelativeSizeX),
		scalar("fscy", Float, RelativeSizeY),
		scalar("fr", Float, Normal),
		scalar("frx", Float, Normal),
		scalar("fry", Float, Normal),
		scalar("frz", Float, Normal),
		scalar("fax", Float, Normal),
		scalar("fay", Float, Normal),

		inline("fs", KindFontSize, Float, AbsoluteSize),
		inline("fs+", KindFontSize, Float, Normal),
		inline("fs-", KindFontSize, Float, Normal),

		inline("fn", KindText, Text, Normal),
		inline("fe", KindText, Text, Normal),
		inline("r", KindText, Text, Normal),

		inline("k", KindKaraoke, Int, Karaoke),
		inline("K", KindKaraoke, Int, Karaoke),
		inline("kf", KindKaraoke, Int, Karaoke),
		inline("ko", KindKaraoke, Int, Karaoke),

		{Name: "pos", Kind: KindPosition, Params: []ParamSpec{
			Param(Float, AbsolutePosX),
			Param(Float, AbsolutePosY),
		}},
		{Name: "org", Kind: KindPosition, Params: []ParamSpec{
			Param(Int, AbsolutePosX),
			Param(Int, AbsolutePosY),
		}},
		{Name: "move", Kind: KindMove, Params: []ParamSpec{
			Param(Float, AbsolutePosX),
			Param(Float, AbsolutePosY),
			Param(Float, AbsolutePosX),
			Param(Float, AbsolutePosY),
			OptionalParam(Int, RelativeTimeStart, 6),
			OptionalParam(Int, RelativeTimeStart, 6),
		}},
		{Name: "t", Kind: KindTransform, Params: []ParamSpec{
			OptionalParam(Int, RelativeTimeStart, 3, 4),
			OptionalParam(Int, RelativeTimeStart, 3, 4),
			OptionalParam(Float, Normal, 2, 4),
			Param(Block, Normal),
		}},
	}

	for _, c := range []string{"c", "1c", "2c", "3c", "4c"} {
		protos = append(protos, inline(c, KindColor, Text, Color))
	}
	for _, a := range []string{"alpha", "1a", "2a", "3a", "4a"} {
		protos = append(protos, inline(a, KindAlpha, Text, Alpha))
	}
	for _, f := range []string{"fad", "fade"} {
		protos = append(protos,
			Prototype{Name: f, Kind: KindFade, Params: []ParamSpec{
				Param(Int, Normal),
				Param(Int, Normal),
				Param(Int, Normal),
				Param(Int, RelativeTimeStart),
				Param(Int, RelativeTimeStart),
				Param(Int, RelativeTimeStart),
				Param(Int, RelativeTimeStart),
			}},
			Prototype{Name: f, Kind: KindFade, Params: []ParamSpec{
				Param(Int, RelativeTimeStart),
				Param(Int, RelativeTimeEnd),
			}},
		)
	}
	for _, c := range []string{"clip", "iclip"} {
		protos = append(protos,
			Prototype{Name: c, Kind: KindClip, Params: []ParamSpec{
				Param(Int, AbsolutePosX),
				Param(Int, AbsolutePosY),
				Param(Int, AbsolutePosX),
				Param(Int, AbsolutePosY),
			}},
			Prototype{Name: c, Kind: KindClip, Params: []ParamSpec{
				OptionalParam(Float, Normal, 2),
				Param(Text, Drawing),
			}},
		)
	}
	return protos
}
